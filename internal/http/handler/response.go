package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/domain"
)

// userResponse is the public profile shape; the password hash never leaves
// the service boundary.
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}

type contactResponse struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Contact  string `json:"contact"`
	ClientID int64  `json:"client_id"`
}

type clientResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	UserID   int64             `json:"user_id"`
	Contacts []contactResponse `json:"contacts"`
}

func newClientResponse(client domain.Client, contacts []domain.Contact) clientResponse {
	resp := clientResponse{
		ID:       client.ID,
		Name:     client.Name,
		UserID:   client.UserID,
		Contacts: make([]contactResponse, 0, len(contacts)),
	}
	for _, c := range contacts {
		resp.Contacts = append(resp.Contacts, contactResponse{
			ID:       c.ID,
			Type:     string(c.Kind),
			Contact:  c.Contact,
			ClientID: c.ClientID,
		})
	}
	return resp
}

type meetingResponse struct {
	ID       int64     `json:"id"`
	Revenue  int64     `json:"revenue"`
	Date     time.Time `json:"date"`
	Duration float64   `json:"duration"`
	UserID   int64     `json:"user_id"`
	ClientID *int64    `json:"client_id,omitempty"`
}

func newMeetingResponse(meeting domain.Meeting) meetingResponse {
	return meetingResponse{
		ID:       meeting.ID,
		Revenue:  meeting.Revenue,
		Date:     meeting.Date,
		Duration: meeting.Duration,
		UserID:   meeting.UserID,
		ClientID: meeting.ClientID,
	}
}

// respondServiceError maps the domain error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "Invalid credentials or token."})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "Requested entity does not exist."})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "error_description": "Resource already exists."})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Malformed request."})
	default:
		zap.L().Error("service failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Internal server error."})
	}
}
