package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/middleware"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Config *config.Config

	Auth          *AuthHandler
	Bot           *BotHandler
	Accounts      *AccountHandler
	Appointments  *AppointmentHandler
	Proxies       *ProxyHandler
	Webhooks      *WebhookHandler
	Audit         *AuditHandler
	Dropdown      *DropdownHandler
	Notifications *NotificationHandler
	Preferences   *PreferenceHandler
	Health        *HealthHandler
	WS            *WSHandler

	AuthService *services.AuthService
	Metrics     *metrics.Metrics
	Logger      *logrus.Logger
}

// NewRouter assembles the gin engine: middleware chain, public routes,
// and the authenticated /api/v1 group.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Logger.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.StructuredLogger(deps.Logger, deps.Metrics))
	router.Use(middleware.Security())
	router.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))

	rateLimiter := middleware.NewRateLimiter(
		deps.Config.Server.RateLimitRequests,
		deps.Config.Server.RateLimitWindow,
		deps.Metrics,
		deps.Logger,
	)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", deps.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// The stream route authenticates via token query parameter and must
	// not run under the request timeout.
	router.GET("/ws", deps.WS.Serve)

	timeout := middleware.Timeout(deps.Config.Server.RequestTimeout, deps.Logger)

	api := router.Group("/api/v1", timeout)
	{
		api.POST("/auth/login", deps.Auth.Login)

		authed := api.Group("", middleware.Auth(deps.AuthService))
		{
			authed.POST("/auth/logout", deps.Auth.Logout)
			authed.GET("/auth/me", deps.Auth.Me)

			authed.GET("/bot/status", deps.Bot.Status)
			authed.POST("/bot/start", deps.Bot.Start)
			authed.POST("/bot/stop", deps.Bot.Stop)
			authed.GET("/bot/settings", deps.Bot.GetSettings)
			authed.PUT("/bot/settings", deps.Bot.UpdateSettings)

			authed.GET("/accounts", deps.Accounts.List)
			authed.POST("/accounts", deps.Accounts.Create)
			authed.DELETE("/accounts/:id", deps.Accounts.Delete)

			authed.GET("/appointments", deps.Appointments.List)
			authed.GET("/appointments/:id", deps.Appointments.Get)
			authed.POST("/appointments", deps.Appointments.Create)
			authed.PUT("/appointments/:id", deps.Appointments.Update)
			authed.PATCH("/appointments/:id/status", deps.Appointments.UpdateStatus)
			authed.DELETE("/appointments/:id", deps.Appointments.Delete)
			authed.POST("/appointments/validate-card", deps.Appointments.ValidateCard)

			authed.GET("/proxies", deps.Proxies.List)
			authed.POST("/proxies", deps.Proxies.Create)
			authed.PUT("/proxies/:id", deps.Proxies.Update)
			authed.DELETE("/proxies/:id", deps.Proxies.Delete)

			authed.GET("/webhooks", deps.Webhooks.List)
			authed.POST("/webhooks", deps.Webhooks.Create)
			authed.PUT("/webhooks/:id", deps.Webhooks.Update)
			authed.DELETE("/webhooks/:id", deps.Webhooks.Delete)
			authed.POST("/webhooks/:id/test", deps.Webhooks.Test)

			authed.GET("/audit/logs", deps.Audit.List)
			authed.GET("/audit/stats", deps.Audit.Stats)

			authed.GET("/dropdown-sync/status", deps.Dropdown.Status)
			authed.POST("/dropdown-sync/trigger", deps.Dropdown.Trigger)

			authed.GET("/notifications", deps.Notifications.List)
			authed.POST("/notifications/read-all", deps.Notifications.MarkAllRead)
			authed.POST("/notifications/:id/read", deps.Notifications.MarkRead)
			authed.DELETE("/notifications/:id", deps.Notifications.Delete)

			authed.GET("/preferences", deps.Preferences.Get)
			authed.PUT("/preferences", deps.Preferences.Update)
		}
	}

	return router
}
