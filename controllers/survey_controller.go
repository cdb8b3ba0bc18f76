package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/surveytree"
)

// GET /api/survey-data
// Trả về mảng survey -> questions -> options, không bọc "data".
func GetSurveyData(c *gin.Context) {
	surveys, err := surveytree.Load(c.Request.Context(), config.DB)
	if err != nil {
		dbError(c, err, "load survey data")
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GET /api/services/:id/survey
func GetServiceSurvey(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}

	survey, err := surveytree.LoadOne(c.Request.Context(), config.DB, int64(svc.SurveyID))
	if errors.Is(err, surveytree.ErrSurveyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found for this service"})
		return
	}
	if err != nil {
		dbError(c, err, "load service survey")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": gin.H{"id": svc.ID, "name": svc.Name},
		"data":    survey,
	})
}
