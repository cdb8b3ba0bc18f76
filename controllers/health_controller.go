package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/metrics"
)

func Root(c *gin.Context) {
	c.String(http.StatusOK, "Service survey server is running")
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GET /health
func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Service is healthy",
		"db":      "ok",
	}

	if config.DB == nil {
		response["status"] = "error"
		response["db"] = "error: not connected"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		response["status"] = "error"
		response["db"] = "error: cannot get DB instance"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		response["status"] = "error"
		response["db"] = "error: cannot connect to DB"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	st := sqlDB.Stats()
	metrics.Default.RecordDBPoolStats(st.OpenConnections, st.InUse, st.Idle, st.WaitCount, st.WaitDuration)
	response["pool"] = gin.H{"open": st.OpenConnections, "in_use": st.InUse, "idle": st.Idle}

	c.JSON(http.StatusOK, response)
}
