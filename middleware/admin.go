package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/utils"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey so khớp header X-Admin-Key với key cấu hình (key gốc hoặc bcrypt hash).
// Key rỗng thì route bị tắt (403).
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Export is disabled"})
			return
		}
		got := c.GetHeader(AdminKeyHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing admin key"})
			return
		}
		if !utils.VerifySecret(key, got) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid admin key"})
			return
		}
		c.Next()
	}
}
