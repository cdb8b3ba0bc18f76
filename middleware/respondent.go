package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/utils"
)

const (
	RespondentHeader     = "X-Respondent-ID"
	respondentContextKey = "respondent_hash"
)

// RespondentIdentity băm header X-Respondent-ID (nếu có) và gắn vào context.
// Id gốc không đi xa hơn middleware này.
func RespondentIdentity(salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := utils.HashRespondent(salt, c.GetHeader(RespondentHeader)); h != "" {
			c.Set(respondentContextKey, h)
		}
		c.Next()
	}
}

// RequireRespondent trả 400 khi request không có X-Respondent-ID.
func RequireRespondent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RespondentHash(c) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Missing " + RespondentHeader + " header",
			})
			return
		}
		c.Next()
	}
}

// RespondentHash trả về hash người trả lời, "" nếu ẩn danh.
func RespondentHash(c *gin.Context) string {
	return c.GetString(respondentContextKey)
}
