package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/http/middleware"
	"github.com/manemajef/clients-app/internal/service"
)

// AuthHandler serves registration, login, and token lifecycle endpoints.
type AuthHandler struct {
	Users *service.UserService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register creates a new account and returns its public profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		FullName string `json:"full_name"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "email and password are required."})
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "email and password are required."})
		return
	}

	pair, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

// Refresh exchanges a bearer refresh token for a new access token. The same
// refresh token is echoed back; it stays valid until its own expiry.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, ok := bearerCredential(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "error_description": "Bearer refresh token required."})
		return
	}

	access, err := h.Users.Refresh(c.Request.Context(), raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": raw,
		"token_type":    "bearer",
	})
}

// Me returns the caller's public profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func bearerCredential(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
