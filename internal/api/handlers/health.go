package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database/postgres"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	pg *postgres.Connector
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(pg *postgres.Connector) *HealthHandler {
	return &HealthHandler{pg: pg}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if pool, err := h.pg.Connect(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	} else if err := pool.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	status["database"] = "ok"
	c.JSON(http.StatusOK, status)
}
