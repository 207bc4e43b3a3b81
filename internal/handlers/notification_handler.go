package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *logrus.Logger
}

func NewNotificationHandler(notifications *services.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// List returns the caller's notifications, newest first, with the
// unread count.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	notifications, unread := h.notifications.List(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if !h.notifications.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), id) {
		c.JSON(http.StatusNotFound, models.NewNotFoundError("Notification not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.notifications.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.notifications.Remove(c.Request.Context(), middleware.CurrentUserID(c), id) {
		c.JSON(http.StatusNotFound, models.NewNotFoundError("Notification not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
