package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/http/middleware"
	"github.com/manemajef/clients-app/internal/service"
)

// ClientHandler serves the client and contact endpoints.
type ClientHandler struct {
	Clients *service.ClientService
}

// NewClientHandler creates the client handler.
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

// Create adds a client with its contacts for the authenticated user.
func (h *ClientHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Contacts []struct {
			Type    string `json:"type"`
			Contact string `json:"contact" binding:"required"`
		} `json:"contacts" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "name is required; contacts need a contact value."})
		return
	}

	in := service.AddClientInput{Name: req.Name}
	for _, contact := range req.Contacts {
		in.Contacts = append(in.Contacts, service.ContactInput{
			Kind:    domain.ContactKind(contact.Type),
			Contact: contact.Contact,
		})
	}

	client, contacts, err := h.Clients.AddClient(c.Request.Context(), user.Email, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newClientResponse(client, contacts))
}

// List returns the caller's clients.
func (h *ClientHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	clients, err := h.Clients.ListClients(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		resp = append(resp, newClientResponse(client, nil))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one of the caller's clients with its contacts.
func (h *ClientHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "error_description": "No authenticated user."})
		return
	}

	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Client id must be numeric."})
		return
	}

	client, contacts, err := h.Clients.GetClient(c.Request.Context(), user.ID, clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newClientResponse(client, contacts))
}
