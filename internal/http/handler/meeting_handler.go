package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/http/middleware"
	"github.com/manemajef/clients-app/internal/service"
)

// MeetingHandler serves the meeting endpoints.
type MeetingHandler struct {
	Meetings *service.MeetingService
}

// NewMeetingHandler creates the meeting handler.
func NewMeetingHandler(meetings *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{Meetings: meetings}
}

// Create adds a meeting for the authenticated user. Optional fields default
// to revenue 0, duration 1.0, and the current time.
func (h *MeetingHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	var req struct {
		Revenue  *int64     `json:"revenue"`
		Date     *time.Time `json:"date"`
		Duration *float64   `json:"duration"`
		ClientID *int64     `json:"client_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Malformed meeting payload."})
		return
	}

	meeting, err := h.Meetings.AddMeeting(c.Request.Context(), user.ID, service.AddMeetingInput{
		Revenue:  req.Revenue,
		Date:     req.Date,
		Duration: req.Duration,
		ClientID: req.ClientID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newMeetingResponse(meeting))
}

// List returns the caller's meetings, optionally filtered by client.
func (h *MeetingHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	var (
		meetings []domain.Meeting
		err      error
	)
	if rawClientID := c.Query("client_id"); rawClientID != "" {
		clientID, parseErr := strconv.ParseInt(rawClientID, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "client_id must be numeric."})
			return
		}
		meetings, err = h.Meetings.ListByClient(c.Request.Context(), user.ID, clientID)
	} else {
		meetings, err = h.Meetings.ListByUser(c.Request.Context(), user.ID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]meetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		resp = append(resp, newMeetingResponse(meeting))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one of the caller's meetings.
func (h *MeetingHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	meetingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Meeting id must be numeric."})
		return
	}

	meeting, err := h.Meetings.GetMeeting(c.Request.Context(), user.ID, meetingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMeetingResponse(meeting))
}
