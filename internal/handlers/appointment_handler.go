package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
	audit        *services.AuditService
	logger       *logrus.Logger
}

func NewAppointmentHandler(appointments *services.AppointmentService, audit *services.AuditService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, audit: audit, logger: logger}
}

// List returns all appointment requests, optionally filtered by
// ?status=pending|booked|cancelled.
func (h *AppointmentHandler) List(c *gin.Context) {
	var (
		requests []*models.AppointmentRequest
		err      error
	)

	if status := c.Query("status"); status != "" {
		requests, err = h.appointments.ListByStatus(c.Request.Context(), status)
	} else {
		requests, err = h.appointments.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	request, err := h.appointments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if request == nil {
		c.JSON(http.StatusNotFound, models.NewNotFoundError("Appointment request not found"))
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid appointment payload: "+err.Error()))
		return
	}

	request, err := h.appointments.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionRequestCreate, request.FullName, "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, request)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid appointment payload: "+err.Error()))
		return
	}

	request, err := h.appointments.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionRequestUpdate, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, request)
}

// UpdateStatus moves a request between pending, booked, and cancelled.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Status is required"))
		return
	}

	if err := h.appointments.UpdateStatus(c.Request.Context(), id, body.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionRequestUpdate, c.Param("id"),
		"status="+body.Status, c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionRequestDelete, c.Param("id"), "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Appointment request deleted"})
}

// ValidateCard checks payment card details without persisting them, so
// the dashboard can validate the form before submitting a request.
func (h *AppointmentHandler) ValidateCard(c *gin.Context) {
	var card models.Card
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid card payload"))
		return
	}

	c.JSON(http.StatusOK, h.appointments.ValidateCard(card))
}
