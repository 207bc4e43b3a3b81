package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
	audit    *services.AuditService
	logger   *logrus.Logger
}

func NewAccountHandler(accounts *services.AccountService, audit *services.AuditService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, audit: audit, logger: logger}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req models.CreateVFSAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid account payload: "+err.Error()))
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionAccountCreate, account.Email, "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionAccountDelete, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
