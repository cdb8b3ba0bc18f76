package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/drafts"
	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/metrics"
	"github.com/vnkhanh/service-survey/middleware"
	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/scoring"
	"github.com/vnkhanh/service-survey/surveytree"
	"github.com/vnkhanh/service-survey/utils"
)

var errAlreadySubmitted = errors.New("respondent already completed this service")

type AnswerInput struct {
	QuestionID string `json:"question_id" binding:"required,itemid"`
	Value      string `json:"value" binding:"max=255"`
}

type SubmitRequest struct {
	SurveyID *uint         `json:"survey_id"`
	Answers  []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// POST /api/services/:id/responses
// Chấm điểm và lưu một lượt trả lời. Mỗi người trả lời (X-Respondent-ID) chỉ được gửi một lần cho mỗi dịch vụ.
func SubmitResponse(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.SurveyID != nil && *req.SurveyID != svc.SurveyID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "survey_id does not belong to this service"})
		return
	}

	ctx := c.Request.Context()
	survey, err := surveytree.LoadOne(ctx, config.DB, int64(svc.SurveyID))
	if errors.Is(err, surveytree.ErrSurveyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found for this service"})
		return
	}
	if err != nil {
		dbError(c, err, "load survey")
		return
	}

	// mọi câu trả lời phải thuộc survey; câu trùng id thì lấy giá trị sau cùng
	catalog := survey.Catalog()
	byID := make(map[string]scoring.Question, len(catalog))
	for _, q := range catalog {
		byID[q.ID] = q
	}
	answers := scoring.Answers{}
	order := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		id := strings.TrimSpace(a.QuestionID)
		if _, ok := byID[id]; !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":     "Answer references a question outside this survey",
				"question_id": id,
			})
			return
		}
		if _, seen := answers[id]; !seen {
			order = append(order, id)
		}
		answers[id] = strings.TrimSpace(a.Value)
	}

	scores := scoring.Compute(answers, catalog)
	dims, err := json.Marshal(scores.Dimensions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot encode scores"})
		return
	}

	resp := models.Response{
		PublicID:             uuid.New().String(),
		ServiceID:            svc.ID,
		SurveyID:             svc.SurveyID,
		Overall:              scores.Overall,
		CorruptionPerception: scores.CorruptionPerception,
		ServiceQuality:       scores.ServiceQuality,
		SurveyIntegrity:      scores.SurveyIntegrity,
		Dimensions:           datatypes.JSON(dims),
	}
	hash := middleware.RespondentHash(c)
	if hash != "" {
		resp.RespondentHash = &hash
	}
	for _, id := range order {
		q := byID[id]
		itemID, _ := strconv.ParseUint(id, 10, 64)
		resp.Answers = append(resp.Answers, models.ResponseAnswer{
			ItemID:   uint(itemID),
			Value:    answers[id],
			Label:    scoring.LabelFor(q, answers[id]),
			Category: string(q.Category),
		})
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hash != "" {
			var n int64
			if err := tx.Model(&models.Response{}).
				Where("service_id = ? AND respondent_hash = ?", svc.ID, hash).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return errAlreadySubmitted
			}
		}
		return tx.Create(&resp).Error
	})
	// hai request đồng thời cùng qua bước đếm: unique index chặn bản ghi thứ hai
	if errors.Is(err, errAlreadySubmitted) || errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"message": "You have already completed the survey for this service"})
		return
	}
	if err != nil {
		dbError(c, err, "create response")
		return
	}

	if hash != "" {
		if err := drafts.NewGormStore(config.DB).Delete(ctx, drafts.Key(svc.ID, hash)); err != nil {
			logger.Log.WithError(err).WithField("service_id", svc.ID).Warn("cannot clear draft after submit")
		}
	}

	metrics.Default.ResponsesSubmitted.WithLabelValues(strconv.FormatUint(uint64(svc.ID), 10)).Inc()
	metrics.Default.OverallScore.Observe(scores.Overall)
	logger.Log.WithFields(logrus.Fields{
		"response_id": resp.PublicID,
		"service_id":  svc.ID,
		"overall":     scores.Overall,
	}).Info("response submitted")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Response submitted",
		"data": gin.H{
			"id":              resp.PublicID,
			"service_id":      resp.ServiceID,
			"survey_id":       resp.SurveyID,
			"scores":          scores,
			"interpretations": scoring.InterpretSet(scores),
			"completed_at":    resp.CompletedAt,
		},
	})
}

// GET /api/responses/:public_id
func GetResponse(c *gin.Context) {
	publicID := c.Param("public_id")
	if _, err := uuid.Parse(publicID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid response id"})
		return
	}

	ctx := c.Request.Context()
	var resp models.Response
	err := config.DB.WithContext(ctx).
		Preload("Service").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&resp, "public_id = ?", publicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}
	if err != nil {
		dbError(c, err, "load response")
		return
	}

	// câu hỏi có thể đã bị đổi nội dung; thiếu survey thì vẫn trả câu trả lời đã lưu
	texts := map[uint]string{}
	if survey, err := surveytree.LoadOne(ctx, config.DB, int64(resp.SurveyID)); err == nil {
		for _, q := range survey.Questions {
			texts[uint(q.ItemID)] = q.Text
		}
	}

	answers := make([]gin.H, 0, len(resp.Answers))
	for _, a := range resp.Answers {
		answers = append(answers, gin.H{
			"question_id":   a.ItemID,
			"question_text": texts[a.ItemID],
			"category":      a.Category,
			"value":         a.Value,
			"label":         a.Label,
		})
	}

	scores := storedScores(resp)
	data := gin.H{
		"id":              resp.PublicID,
		"service_id":      resp.ServiceID,
		"survey_id":       resp.SurveyID,
		"completed_at":    resp.CompletedAt,
		"scores":          scores,
		"interpretations": scoring.InterpretSet(scores),
		"answers":         answers,
	}
	if resp.Service != nil {
		data["service"] = gin.H{"id": resp.Service.ID, "name": resp.Service.Name, "faculty": resp.Service.Faculty}
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/history
// Các lượt trả lời của người gửi header X-Respondent-ID, mới nhất trước.
func GetHistory(c *gin.Context) {
	hash := middleware.RespondentHash(c)
	page, limit, offset := utils.Pagination(c, 10)

	query := config.DB.WithContext(c.Request.Context()).
		Model(&models.Response{}).
		Where("respondent_hash = ?", hash).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		dbError(c, err, "count history")
		return
	}

	var responses []models.Response
	if err := query.Preload("Service").
		Order("completed_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&responses).Error; err != nil {
		dbError(c, err, "list history")
		return
	}

	items := make([]gin.H, 0, len(responses))
	for _, r := range responses {
		item := gin.H{
			"id":           r.PublicID,
			"service_id":   r.ServiceID,
			"overall":      r.Overall,
			"band":         scoring.BandOf(r.Overall),
			"completed_at": r.CompletedAt,
		}
		if r.Service != nil {
			item["service_name"] = r.Service.Name
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func storedScores(r models.Response) scoring.ScoreSet {
	s := scoring.ScoreSet{
		Overall:              r.Overall,
		CorruptionPerception: r.CorruptionPerception,
		ServiceQuality:       r.ServiceQuality,
		SurveyIntegrity:      r.SurveyIntegrity,
		Dimensions:           map[string]float64{},
	}
	if len(r.Dimensions) > 0 {
		if err := json.Unmarshal(r.Dimensions, &s.Dimensions); err != nil {
			logger.Log.WithError(err).WithField("response_id", r.PublicID).Warn("invalid stored dimensions")
		}
	}
	return s
}
