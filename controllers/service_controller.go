package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/scoring"
	"github.com/vnkhanh/service-survey/utils"
)

// GET /api/services
// Query: search, faculty, category ("all" = bỏ lọc), status, sort_by (name|category|faculty), sort_order (asc|desc)
func ListServices(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Model(&models.Service{})

	if p := utils.ContainsPattern(c.Query("search")); p != "" {
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(faculty) LIKE ? ESCAPE '\'`,
			p, p, p,
		)
	}
	if faculty := strings.TrimSpace(c.Query("faculty")); faculty != "" && faculty != "all" {
		query = query.Where("faculty = ?", faculty)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	// sắp xếp
	sortBy := c.DefaultQuery("sort_by", "name")
	sortOrder := "asc"
	if strings.ToLower(c.Query("sort_order")) == "desc" {
		sortOrder = "desc"
	}
	column := "name"
	switch sortBy {
	case "category", "faculty":
		column = sortBy
	}

	var services []models.Service
	if err := query.Order(column + " " + sortOrder).Order("id asc").Find(&services).Error; err != nil {
		dbError(c, err, "list services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  services,
		"total": len(services),
	})
}

// GET /api/services/facets
func GetServiceFacets(c *gin.Context) {
	db := config.DB.WithContext(c.Request.Context())

	var faculties, categories []string
	if err := db.Model(&models.Service{}).Where("faculty <> ''").Distinct().Order("faculty").Pluck("faculty", &faculties).Error; err != nil {
		dbError(c, err, "list faculties")
		return
	}
	if err := db.Model(&models.Service{}).Where("category <> ''").Distinct().Order("category").Pluck("category", &categories).Error; err != nil {
		dbError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"faculties":  nonNil(faculties),
		"categories": nonNil(categories),
	})
}

type serviceAggregate struct {
	Responses            int64   `json:"responses"`
	Overall              float64 `json:"overall"`
	CorruptionPerception float64 `json:"corruption_perception"`
	ServiceQuality       float64 `json:"service_quality"`
	SurveyIntegrity      float64 `json:"survey_integrity"`
}

// GET /api/services/:id
// Chi tiết dịch vụ kèm điểm trung bình các lượt trả lời và thống kê sao.
func GetServiceDetail(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}
	db := config.DB.WithContext(c.Request.Context())

	var agg serviceAggregate
	err := db.Model(&models.Response{}).
		Select(`COUNT(*) AS responses,
			COALESCE(AVG(overall), 0) AS overall,
			COALESCE(AVG(corruption_perception), 0) AS corruption_perception,
			COALESCE(AVG(service_quality), 0) AS service_quality,
			COALESCE(AVG(survey_integrity), 0) AS survey_integrity`).
		Where("service_id = ?", svc.ID).
		Scan(&agg).Error
	if err != nil {
		dbError(c, err, "aggregate responses")
		return
	}
	agg.Overall = scoring.Round2(agg.Overall)
	agg.CorruptionPerception = scoring.Round2(agg.CorruptionPerception)
	agg.ServiceQuality = scoring.Round2(agg.ServiceQuality)
	agg.SurveyIntegrity = scoring.Round2(agg.SurveyIntegrity)

	var ratings []int
	if err := db.Model(&models.Feedback{}).Where("service_id = ?", svc.ID).Pluck("rating", &ratings).Error; err != nil {
		dbError(c, err, "load ratings")
		return
	}

	resp := gin.H{
		"service":   svc,
		"aggregate": agg,
		"ratings":   scoring.RatingStats(ratings),
	}
	if agg.Responses > 0 {
		resp["interpretation"] = scoring.Interpret(agg.Overall, "overall")
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
