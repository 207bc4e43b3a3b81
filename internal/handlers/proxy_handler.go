package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type ProxyHandler struct {
	proxies *services.ProxyService
	audit   *services.AuditService
	logger  *logrus.Logger
}

func NewProxyHandler(proxies *services.ProxyService, audit *services.AuditService, logger *logrus.Logger) *ProxyHandler {
	return &ProxyHandler{proxies: proxies, audit: audit, logger: logger}
}

func (h *ProxyHandler) List(c *gin.Context) {
	proxies, err := h.proxies.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proxies": proxies, "count": len(proxies)})
}

func (h *ProxyHandler) Create(c *gin.Context) {
	var req models.CreateProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid proxy payload: "+err.Error()))
		return
	}

	proxy, err := h.proxies.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionProxyCreate, proxy.Host, "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, proxy)
}

func (h *ProxyHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid proxy payload"))
		return
	}

	proxy, err := h.proxies.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionProxyUpdate, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, proxy)
}

func (h *ProxyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.proxies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionProxyDelete, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Proxy deleted"})
}
