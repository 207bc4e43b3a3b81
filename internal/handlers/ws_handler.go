package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/hub"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

// WSHandler upgrades dashboard connections and parks them on the hub.
// Auth happens via a token query parameter because browsers cannot set
// headers on websocket upgrades.
type WSHandler struct {
	hub      *hub.Hub
	auth     *services.AuthService
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub, auth *services.AuthService, m *metrics.Metrics, logger *logrus.Logger, allowedOrigins []string) *WSHandler {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[origin] = true
	}

	return &WSHandler{
		hub:     h,
		auth:    auth,
		metrics: m,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originSet[origin]
			},
		},
	}
}

// Serve handles GET /ws.
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token query parameter required"})
		return
	}
	claims, err := h.auth.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.hub.Register(conn)
	h.metrics.SetStreamClients(h.hub.ClientCount())

	h.logger.WithField("username", claims["username"]).Debug("Dashboard stream opened")

	// Drain the read side so close frames and pings are processed; the
	// dashboard never sends application messages.
	go func() {
		defer func() {
			h.hub.Unregister(conn)
			h.metrics.SetStreamClients(h.hub.ClientCount())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.WithError(err).Debug("Dashboard stream closed unexpectedly")
				}
				return
			}
		}
	}()
}
