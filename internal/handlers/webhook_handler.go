package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type WebhookHandler struct {
	webhooks *services.WebhookService
	audit    *services.AuditService
	logger   *logrus.Logger
}

func NewWebhookHandler(webhooks *services.WebhookService, audit *services.AuditService, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, audit: audit, logger: logger}
}

func (h *WebhookHandler) List(c *gin.Context) {
	webhooks, err := h.webhooks.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": webhooks, "count": len(webhooks)})
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req models.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid webhook payload: "+err.Error()))
		return
	}

	webhook, err := h.webhooks.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionWebhookCreate, webhook.URL, "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, webhook)
}

func (h *WebhookHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid webhook payload"))
		return
	}

	webhook, err := h.webhooks.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionWebhookUpdate, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, webhook)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.webhooks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionWebhookDelete, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted"})
}

// Test fires a synthetic delivery at one webhook and reports the status
// the endpoint answered with.
func (h *WebhookHandler) Test(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	status, err := h.webhooks.Test(c.Request.Context(), id)
	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionWebhookTest, c.Param("id"),
		fmt.Sprintf("status=%d", status), c.ClientIP(), middleware.GetRequestID(c))

	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"delivered":  status < 400,
		"statusCode": status,
	})
}
