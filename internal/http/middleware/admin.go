package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/config"
)

// AdminSecret guards administrative read endpoints with a shared static
// secret. This is a deliberately weaker trust boundary than the bearer-token
// path and never grants access to user-facing routes.
func AdminSecret(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.Query("secret")
		if cfg.AdminSecret == "" ||
			subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.AdminSecret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_secret", "error_description": "Admin secret required."})
			return
		}
		c.Next()
	}
}
