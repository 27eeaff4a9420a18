package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and status endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

// RegisterRoutes registers system routes on the engine root, outside the
// versioned API group
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// HealthStatus is the health endpoint payload
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Health reports service and database health
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := HealthStatus{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
	}

	if err := h.db.Ping(); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}
