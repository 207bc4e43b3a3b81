package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
)

type AuthHandler struct {
	auth          *services.AuthService
	notifications *services.NotificationService
	audit         *services.AuditService
	logger        *logrus.Logger
}

func NewAuthHandler(
	auth *services.AuthService,
	notifications *services.NotificationService,
	audit *services.AuditService,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		notifications: notifications,
		audit:         audit,
		logger:        logger,
	}
}

// Login exchanges credentials for a session token. Repeated failures
// lock the username out; the response carries the remaining wait so the
// dashboard can show a countdown.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadRequestError("Username and password are required"))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountLocked):
			retryAfter := h.auth.RetryAfter(req.Username).Seconds()
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter))
			h.audit.Record(req.Username, models.AuditActionLoginFailed, "auth", "account locked",
				c.ClientIP(), middleware.GetRequestID(c))
			c.JSON(http.StatusTooManyRequests, models.NewAccountLockedError(retryAfter))
		case errors.Is(err, services.ErrInvalidCredentials):
			h.audit.Record(req.Username, models.AuditActionLoginFailed, "auth", "invalid credentials",
				c.ClientIP(), middleware.GetRequestID(c))
			c.JSON(http.StatusUnauthorized, models.NewUnauthorizedError("Invalid username or password"))
		default:
			respondError(c, h.logger, err)
		}
		return
	}

	h.audit.Record(req.Username, models.AuditActionLogin, "auth", "", c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, resp)
}

// Logout records the end of a session. Tokens are stateless, so this is
// an audit event; the dashboard discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.audit.Record(middleware.CurrentUsername(c), models.AuditActionLogout, "auth", "",
		c.ClientIP(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, models.NewNotFoundError("User not found"))
		return
	}

	// Hydrate the user's notification list so broadcasts made before
	// their first notifications fetch still reach them.
	h.notifications.EnsureLoaded(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, user)
}
