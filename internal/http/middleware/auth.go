package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/service"
)

const currentUserKey = "currentUser"

// Auth resolves the authenticated principal from a bearer access token. The
// check runs exactly once per guarded request, before any business logic.
type Auth struct {
	Users *service.UserService
}

// RequireUser validates the Authorization header, resolves the user, and
// attaches it to the request context. Missing or invalid tokens answer 401;
// a valid token whose account no longer exists answers 404.
func (m *Auth) RequireUser(c *gin.Context) {
	raw, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "error_description": "Bearer token required."})
		return
	}

	user, err := m.Users.GetByToken(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "error_description": "Invalid access token."})
		case errors.Is(err, domain.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user_not_found", "error_description": "Account no longer exists."})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Internal server error."})
		}
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// CurrentUser returns the principal attached by RequireUser.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
