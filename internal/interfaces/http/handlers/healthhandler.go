package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB. A nil Pinger reports the database down.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db          Pinger
	connections func() int
}

func NewHealthHandler(db Pinger, connections func() int) *HealthHandler {
	return &HealthHandler{db: db, connections: connections}
}

// Health
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if h.db == nil || h.db.PingContext(ctx) != nil {
		status, code = "database unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"connections": h.connections(),
	})
}
