package middleware

import (
	"net/http"
	"strings"

	"salonflow/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware verifies the session token minted when a booking
// session was created and checks it matches the session being addressed, so
// a caller can only ever drive its own flow.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		sessionID, err := utils.ExtractSessionID(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		if param := c.Param("sessionID"); param != "" && param != sessionID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not match session"})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
