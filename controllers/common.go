package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/utils"
)

// loadService đọc :id và dịch vụ tương ứng; tự trả lỗi 400/404/500 khi thất bại.
func loadService(c *gin.Context) (models.Service, bool) {
	var svc models.Service
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service id"})
		return svc, false
	}
	if err := config.DB.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
			return svc, false
		}
		dbError(c, err, "load service")
		return svc, false
	}
	return svc, true
}

// dbError log lỗi DB và trả 500 với message chung.
func dbError(c *gin.Context, err error, op string) {
	logger.Log.WithError(err).WithField("op", op).Error("database error")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
}
