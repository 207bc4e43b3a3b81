package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/hub"
	"github.com/slotpilot/bot-dashboard-backend/internal/store"
)

type HealthHandler struct {
	db      *sql.DB
	status  *store.StatusStore
	hub     *hub.Hub
	logger  *logrus.Logger
	version string
}

func NewHealthHandler(db *sql.DB, status *store.StatusStore, h *hub.Hub, logger *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		status:  status,
		hub:     h,
		logger:  logger,
		version: version,
	}
}

// Health reports service liveness plus how fresh the agent view is.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC(),
			"version":   h.version,
			"error":     "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().UTC(),
		"version":         h.version,
		"statusUpdatedAt": h.status.UpdatedAt(),
		"streamClients":   h.hub.ClientCount(),
	})
}
