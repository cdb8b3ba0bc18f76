// Package surveytree dựng cây Survey -> Question -> Option từ các dòng LEFT JOIN phẳng.
package surveytree

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vnkhanh/service-survey/scoring"
)

// Row là một dòng survey x item x options. Cột của item/options có thể NULL.
type Row struct {
	SurveyID     int64   `gorm:"column:surveyid"`
	SurveyName   string  `gorm:"column:surveyname"`
	ItemID       *int64  `gorm:"column:itemid"`
	QuestionText *string `gorm:"column:question_text"`
	Category     *string `gorm:"column:category"`
	Dimension    *string `gorm:"column:dimension"`
	OptionID     *int64  `gorm:"column:optionid"`
	OptionData   *string `gorm:"column:option_data"`
}

type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Question struct {
	ItemID    int64    `json:"itemid"`
	Text      string   `json:"text"`
	Category  string   `json:"category,omitempty"`
	Dimension string   `json:"dimension,omitempty"`
	Options   []Option `json:"options"`
}

type Survey struct {
	SurveyID   int64      `json:"surveyid"`
	SurveyName string     `json:"surveyname"`
	Questions  []Question `json:"questions"`
}

// Assemble gom dòng theo surveyid rồi itemid, giữ thứ tự xuất hiện đầu tiên.
// Lựa chọn được cộng dồn theo thứ tự đến, bỏ trùng theo optionid và theo (label, value); entry lỗi bị bỏ qua.
func Assemble(rows []Row) []Survey {
	type surveyAcc struct {
		survey    Survey
		questions []*Question
		byItem    map[int64]*Question
		seenOpt   map[[2]int64]bool // (itemid, optionid) đã cộng dồn
	}

	var order []*surveyAcc
	bySurvey := map[int64]*surveyAcc{}

	for _, r := range rows {
		acc, ok := bySurvey[r.SurveyID]
		if !ok {
			acc = &surveyAcc{
				survey: Survey{SurveyID: r.SurveyID, SurveyName: r.SurveyName},
				byItem:  map[int64]*Question{},
				seenOpt: map[[2]int64]bool{},
			}
			bySurvey[r.SurveyID] = acc
			order = append(order, acc)
		}

		if r.ItemID == nil || *r.ItemID == 0 {
			continue
		}

		q, ok := acc.byItem[*r.ItemID]
		if !ok {
			q = &Question{
				ItemID:    *r.ItemID,
				Text:      deref(r.QuestionText),
				Category:  deref(r.Category),
				Dimension: deref(r.Dimension),
				Options:   []Option{},
			}
			acc.byItem[*r.ItemID] = q
			acc.questions = append(acc.questions, q)
		}

		if r.OptionID == nil || *r.OptionID == 0 || r.OptionData == nil {
			continue
		}
		key := [2]int64{*r.ItemID, *r.OptionID}
		if acc.seenOpt[key] {
			continue
		}
		acc.seenOpt[key] = true
		for _, o := range ParseOptions(*r.OptionData) {
			if !hasOption(q.Options, o) {
				q.Options = append(q.Options, o)
			}
		}
	}

	out := make([]Survey, 0, len(order))
	for _, acc := range order {
		s := acc.survey
		s.Questions = make([]Question, 0, len(acc.questions))
		for _, q := range acc.questions {
			s.Questions = append(s.Questions, *q)
		}
		out = append(out, s)
	}
	return out
}

type rawOption struct {
	Text  string      `json:"text"`
	Score json.Number `json:"score"`
}

// ParseOptions đọc cột options dạng mảng JSON [{"text": ..., "score": n}].
// Cột không phải mảng trả về nil; entry thiếu text hoặc score ngoài 1..6 bị bỏ qua.
func ParseOptions(raw string) []Option {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	out := make([]Option, 0, len(entries))
	for _, e := range entries {
		var o rawOption
		dec := json.NewDecoder(bytes.NewReader(e))
		dec.UseNumber()
		if err := dec.Decode(&o); err != nil {
			continue
		}
		if o.Text == "" {
			continue
		}
		n, err := strconv.Atoi(o.Score.String())
		if err != nil || n < scoring.MinRawScore || n > scoring.MaxRawScore {
			continue
		}
		out = append(out, Option{Label: o.Text, Value: n})
	}
	return out
}

// Catalog chuyển survey sang danh mục câu hỏi dùng để chấm điểm.
// Question id là itemid dạng chuỗi; category không hợp lệ giữ nguyên để bộ chấm tự bỏ qua.
func (s Survey) Catalog() []scoring.Question {
	out := make([]scoring.Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		c, _ := scoring.ParseCategory(q.Category)
		sq := scoring.Question{
			ID:        strconv.FormatInt(q.ItemID, 10),
			Text:      q.Text,
			Category:  c,
			Dimension: q.Dimension,
		}
		for _, o := range q.Options {
			sq.Options = append(sq.Options, scoring.Option{
				Label: o.Label,
				Value: strconv.Itoa(o.Value),
				Score: o.Value,
			})
		}
		out = append(out, sq)
	}
	return out
}

// Question tìm câu hỏi theo id chuỗi.
func (s Survey) Question(id string) (Question, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Question{}, false
	}
	for _, q := range s.Questions {
		if q.ItemID == n {
			return q, true
		}
	}
	return Question{}, false
}

func hasOption(opts []Option, o Option) bool {
	for _, x := range opts {
		if x == o {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
