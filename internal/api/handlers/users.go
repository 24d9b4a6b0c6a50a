package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/response"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/directory"
)

// UsersHandler handles user directory HTTP requests
type UsersHandler struct {
	svc *directory.Service
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(svc *directory.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// Notifiable handles GET /api/v1/users/notifiable
// Used by the news email job to pick recipients.
func (h *UsersHandler) Notifiable(c *gin.Context) {
	users := h.svc.ListNotifiableUsers(c.Request.Context())
	response.SuccessList(c, users, len(users))
}
