package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type DropdownHandler struct {
	dropdown *services.DropdownService
	audit    *services.AuditService
	logger   *logrus.Logger
}

func NewDropdownHandler(dropdown *services.DropdownService, audit *services.AuditService, logger *logrus.Logger) *DropdownHandler {
	return &DropdownHandler{dropdown: dropdown, audit: audit, logger: logger}
}

func (h *DropdownHandler) Status(c *gin.Context) {
	status, err := h.dropdown.Status(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *DropdownHandler) Trigger(c *gin.Context) {
	if err := h.dropdown.Trigger(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionDropdownSync, "dropdown", "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusAccepted, gin.H{"message": "Dropdown sync triggered"})
}
