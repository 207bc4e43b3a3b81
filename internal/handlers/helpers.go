package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	pkgerrors "github.com/slotpilot/bot-dashboard-backend/pkg/errors"
)

// respondError maps an error to the wire format. AppErrors keep their
// status and field map; agent HTTP errors map to 502; everything else
// is an opaque 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= 500 {
			logger.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("Request failed")
		}
		c.JSON(appErr.StatusCode, appErr)
		return
	}

	var httpErr *pkgerrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(http.StatusBadGateway, models.NewAgentUnreachableError(err))
		return
	}

	logger.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("Request failed")
	c.JSON(http.StatusInternalServerError, models.NewInternalError("Request failed", nil))
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Invalid id parameter"))
		return 0, false
	}
	return id, true
}
