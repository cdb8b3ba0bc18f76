package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/scoring"
	"github.com/vnkhanh/service-survey/utils"
)

const anonymousAuthor = "Anonymous"

type FeedbackRequest struct {
	AuthorName string  `json:"author_name" binding:"max=100"`
	Rating     int     `json:"rating" binding:"required,rating"`
	Content    string  `json:"content" binding:"required,max=2000"`
	ResponseID *string `json:"response_id" binding:"omitempty,uuid"`
}

// POST /api/services/:id/feedback
func CreateFeedback(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Content is required"})
		return
	}
	author := strings.TrimSpace(req.AuthorName)
	if author == "" {
		author = anonymousAuthor
	}

	db := config.DB.WithContext(c.Request.Context())

	// response_id (nếu có) phải là lượt trả lời của chính dịch vụ này
	if req.ResponseID != nil {
		var n int64
		if err := db.Model(&models.Response{}).
			Where("public_id = ? AND service_id = ?", *req.ResponseID, svc.ID).
			Count(&n).Error; err != nil {
			dbError(c, err, "check response")
			return
		}
		if n == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "response_id does not belong to this service"})
			return
		}
	}

	fb := models.Feedback{
		ServiceID:  svc.ID,
		ResponseID: req.ResponseID,
		AuthorName: author,
		Rating:     req.Rating,
		Content:    content,
	}
	if err := db.Create(&fb).Error; err != nil {
		dbError(c, err, "create feedback")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for your feedback",
		"data":    fb,
	})
}

// GET /api/services/:id/feedback
// Query: rating, sort, page, limit
func ListServiceFeedback(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}
	query := config.DB.WithContext(c.Request.Context()).
		Model(&models.Feedback{}).
		Where("feedback.service_id = ?", svc.ID)
	listFeedback(c, query)
}

// GET /api/testimonials
// Query: search (nội dung, tên người viết, tên dịch vụ), rating, service_id, sort, page, limit
func ListTestimonials(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).
		Model(&models.Feedback{}).
		Joins("LEFT JOIN service ON service.id = feedback.service_id")

	if p := utils.ContainsPattern(c.Query("search")); p != "" {
		query = query.Where(
			`LOWER(feedback.content) LIKE ? ESCAPE '\' OR LOWER(feedback.author_name) LIKE ? ESCAPE '\' OR LOWER(service.name) LIKE ? ESCAPE '\'`,
			p, p, p,
		)
	}
	if sid, err := strconv.ParseUint(c.Query("service_id"), 10, 64); err == nil && sid > 0 {
		query = query.Where("feedback.service_id = ?", sid)
	}
	listFeedback(c, query)
}

func listFeedback(c *gin.Context, query *gorm.DB) {
	if r, err := strconv.Atoi(c.Query("rating")); err == nil && r >= scoring.MinRating && r <= scoring.MaxRating {
		query = query.Where("feedback.rating = ?", r)
	}
	query = query.Session(&gorm.Session{})

	page, limit, offset := utils.Pagination(c, 10)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		dbError(c, err, "count feedback")
		return
	}

	var items []models.Feedback
	if err := query.Select("feedback.*").
		Preload("Service").
		Order(feedbackOrder(c.DefaultQuery("sort", "newest"))).
		Order("feedback.id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		dbError(c, err, "list feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func feedbackOrder(sort string) string {
	switch sort {
	case "oldest":
		return "feedback.created_at ASC"
	case "highest":
		return "feedback.rating DESC, feedback.created_at DESC"
	case "lowest":
		return "feedback.rating ASC, feedback.created_at DESC"
	case "helpful":
		return "feedback.helpful_count DESC, feedback.created_at DESC"
	}
	return "feedback.created_at DESC"
}

// GET /api/testimonials/stats
// Thống kê sao toàn bộ, hoặc của một dịch vụ khi có service_id.
func GetTestimonialStats(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Model(&models.Feedback{})
	if sid, err := strconv.ParseUint(c.Query("service_id"), 10, 64); err == nil && sid > 0 {
		query = query.Where("service_id = ?", sid)
	}

	var ratings []int
	if err := query.Pluck("rating", &ratings).Error; err != nil {
		dbError(c, err, "load ratings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": scoring.RatingStats(ratings)})
}

// POST /api/testimonials/:id/helpful
func MarkFeedbackHelpful(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid feedback id"})
		return
	}

	db := config.DB.WithContext(c.Request.Context())
	res := db.Model(&models.Feedback{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", 1))
	if res.Error != nil {
		dbError(c, res.Error, "mark helpful")
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Feedback not found"})
		return
	}

	var fb models.Feedback
	if err := db.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Feedback not found"})
			return
		}
		dbError(c, err, "reload feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": fb.ID, "helpful_count": fb.HelpfulCount})
}
