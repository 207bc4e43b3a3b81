package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type BotHandler struct {
	bot    *services.BotService
	audit  *services.AuditService
	logger *logrus.Logger
}

func NewBotHandler(bot *services.BotService, audit *services.AuditService, logger *logrus.Logger) *BotHandler {
	return &BotHandler{bot: bot, audit: audit, logger: logger}
}

// Status returns the merged live view plus a tail of recent log lines.
// ?lines= bounds the tail, defaulting to 100.
func (h *BotHandler) Status(c *gin.Context) {
	lines := 100
	if raw := c.Query("lines"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid lines parameter"))
			return
		}
		lines = parsed
	}

	status, logs := h.bot.Status(lines)
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"logs":   logs,
	})
}

func (h *BotHandler) Start(c *gin.Context) {
	if err := h.bot.Start(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionBotStart, "bot", "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Bot start requested"})
}

func (h *BotHandler) Stop(c *gin.Context) {
	if err := h.bot.Stop(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionBotStop, "bot", "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Bot stop requested"})
}

func (h *BotHandler) GetSettings(c *gin.Context) {
	settings, err := h.bot.Settings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *BotHandler) UpdateSettings(c *gin.Context) {
	var settings models.BotSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid settings payload"))
		return
	}

	if err := h.bot.UpdateSettings(c.Request.Context(), &settings); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionSettingsUpdate, "bot", "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, settings)
}
