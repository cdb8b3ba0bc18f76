// Package seed nạp danh mục survey và danh bạ dịch vụ từ file YAML.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/scoring"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type Option struct {
	Text  string `yaml:"text" json:"text"`
	Score int    `yaml:"score" json:"score"`
}

type OptionSet struct {
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options"`
}

type Question struct {
	Text      string `yaml:"text"`
	Category  string `yaml:"category"`
	Dimension string `yaml:"dimension"`
	Options   string `yaml:"options"`
}

type Survey struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

type Service struct {
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	Faculty          string `yaml:"faculty"`
	Category         string `yaml:"category"`
	Status           string `yaml:"status"`
	Location         string `yaml:"location"`
	OperationalHours string `yaml:"operational_hours"`
	ContactPerson    string `yaml:"contact_person"`
	QRCode           string `yaml:"qr_code"`
	Survey           string `yaml:"survey"`
}

type Catalog struct {
	OptionSets []OptionSet `yaml:"option_sets"`
	Surveys    []Survey    `yaml:"surveys"`
	Services   []Service   `yaml:"services"`
}

// Result đếm số bản ghi đã tạo hoặc cập nhật.
type Result struct {
	OptionSets int
	Surveys    int
	Questions  int
	Services   int
}

// Default trả về catalog nhúng trong binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse đọc YAML và kiểm tra tham chiếu giữa các phần.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) Validate() error {
	sets := map[string]bool{}
	for _, def := range c.OptionSets {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf("option set without name")
		}
		if len(def.Options) == 0 {
			return fmt.Errorf("option set %q has no options", def.Name)
		}
		for _, o := range def.Options {
			if strings.TrimSpace(o.Text) == "" {
				return fmt.Errorf("option set %q: option without text", def.Name)
			}
			if o.Score < scoring.MinRawScore || o.Score > scoring.MaxRawScore {
				return fmt.Errorf("option set %q: score %d outside %d..%d", def.Name, o.Score, scoring.MinRawScore, scoring.MaxRawScore)
			}
		}
		sets[def.Name] = true
	}

	surveys := map[string]bool{}
	for _, s := range c.Surveys {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("survey without name")
		}
		for i, q := range s.Questions {
			if strings.TrimSpace(q.Text) == "" {
				return fmt.Errorf("survey %q: question %d has no text", s.Name, i+1)
			}
			if _, ok := scoring.ParseCategory(q.Category); !ok {
				return fmt.Errorf("survey %q: question %d has unknown category %q", s.Name, i+1, q.Category)
			}
			if !sets[q.Options] {
				return fmt.Errorf("survey %q: question %d uses unknown option set %q", s.Name, i+1, q.Options)
			}
		}
		surveys[s.Name] = true
	}

	for _, svc := range c.Services {
		if strings.TrimSpace(svc.Name) == "" {
			return fmt.Errorf("service without name")
		}
		if !surveys[svc.Survey] {
			return fmt.Errorf("service %q uses unknown survey %q", svc.Name, svc.Survey)
		}
	}
	return nil
}

// Apply ghi catalog vào DB trong một transaction. Bản ghi khớp theo tên
// (câu hỏi khớp theo survey + nội dung) nên chạy lại nhiều lần vẫn an toàn.
func Apply(ctx context.Context, db *gorm.DB, cat *Catalog) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		optionIDs := map[string]uint{}
		for _, def := range cat.OptionSets {
			data, err := json.Marshal(def.Options)
			if err != nil {
				return err
			}
			var set models.OptionSet
			if err := tx.Where(models.OptionSet{OptionName: def.Name}).
				Assign(models.OptionSet{Text: datatypes.JSON(data)}).
				FirstOrCreate(&set).Error; err != nil {
				return fmt.Errorf("upsert option set %q: %w", def.Name, err)
			}
			optionIDs[def.Name] = set.OptionID
			res.OptionSets++
		}

		surveyIDs := map[string]uint{}
		for _, s := range cat.Surveys {
			var survey models.Survey
			if err := tx.Where(models.Survey{SurveyName: s.Name}).FirstOrCreate(&survey).Error; err != nil {
				return fmt.Errorf("upsert survey %q: %w", s.Name, err)
			}
			surveyIDs[s.Name] = survey.SurveyID
			res.Surveys++

			for _, q := range s.Questions {
				c, _ := scoring.ParseCategory(q.Category)
				optionID := optionIDs[q.Options]
				var dim *string
				if d := strings.TrimSpace(q.Dimension); d != "" {
					dim = &d
				}
				var item models.Item
				if err := tx.Where(models.Item{SurveyID: survey.SurveyID, Text: q.Text}).
					Assign(map[string]interface{}{
						"category":  string(c),
						"dimension": dim,
						"optionid":  optionID,
					}).
					FirstOrCreate(&item).Error; err != nil {
					return fmt.Errorf("upsert question %q: %w", q.Text, err)
				}
				res.Questions++
			}
		}

		for _, svc := range cat.Services {
			status := svc.Status
			if status == "" {
				status = "active"
			}
			var row models.Service
			if err := tx.Where(models.Service{Name: svc.Name}).
				Assign(map[string]interface{}{
					"description":       svc.Description,
					"faculty":           svc.Faculty,
					"category":          svc.Category,
					"status":            status,
					"location":          svc.Location,
					"operational_hours": svc.OperationalHours,
					"contact_person":    svc.ContactPerson,
					"qr_code":           svc.QRCode,
					"survey_id":         surveyIDs[svc.Survey],
				}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("upsert service %q: %w", svc.Name, err)
			}
			res.Services++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
