package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/service"
)

// AdminHandler serves the static-secret administrative read endpoints.
type AdminHandler struct {
	Users *service.UserService
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{Users: users}
}

// ListUsers returns every registered user's public profile.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, newUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}
