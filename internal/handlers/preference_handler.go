package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
)

type PreferenceHandler struct {
	prefs  repositories.PreferenceRepository
	logger *logrus.Logger
}

func NewPreferenceHandler(prefs repositories.PreferenceRepository, logger *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, logger: logger}
}

// Get returns the caller's dashboard preferences, falling back to
// defaults when none were ever saved.
func (h *PreferenceHandler) Get(c *gin.Context) {
	pref, err := h.prefs.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	var body struct {
		Theme             string `json:"theme" binding:"required,oneof=light dark"`
		NotificationSound *bool  `json:"notificationSound" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Theme must be light or dark; notificationSound is required"))
		return
	}

	pref := &models.Preference{
		UserID:            middleware.CurrentUserID(c),
		Theme:             body.Theme,
		NotificationSound: *body.NotificationSound,
	}

	if err := h.prefs.Upsert(c.Request.Context(), pref); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, pref)
}
