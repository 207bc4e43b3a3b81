package botclient

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// StreamHandler receives decoded messages from the agent's push channel.
type StreamHandler interface {
	HandleStatus(update models.StatusUpdate)
	HandleStats(stats models.StatsUpdate)
	HandleLog(entry models.LogEntry)
}

// Subscriber maintains the persistent websocket subscription to the
// agent. After an unexpected close it reconnects with a linearly growing
// delay (base * attempt), gives up after maxAttempts consecutive
// failures, and resets the attempt counter on every successful open.
type Subscriber struct {
	url         string
	apiKey      string
	baseDelay   time.Duration
	maxAttempts int
	handler     StreamHandler
	logger      *logrus.Logger

	dial func(ctx context.Context, url string, header http.Header) (wsConn, error)

	// onReconnect, when set, is invoked once per reconnect attempt.
	onReconnect func()

	mu       sync.Mutex
	attempts int
	conn     wsConn
}

// wsConn is the subset of *websocket.Conn the subscriber uses; tests
// substitute their own implementation.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

func NewSubscriber(cfg *config.AgentConfig, handler StreamHandler, logger *logrus.Logger) *Subscriber {
	return &Subscriber{
		url:         cfg.WSURL,
		apiKey:      cfg.APIKey,
		baseDelay:   cfg.ReconnectBase,
		maxAttempts: cfg.MaxReconnects,
		handler:     handler,
		logger:      logger,
		dial:        dialWebsocket,
	}
}

// OnReconnect registers a hook called on every reconnect attempt,
// used to feed the reconnect counter metric.
func (s *Subscriber) OnReconnect(fn func()) {
	s.onReconnect = fn
}

func dialWebsocket(ctx context.Context, url string, header http.Header) (wsConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Run connects and keeps reading until ctx is cancelled or the attempt
// budget is exhausted. It blocks; callers run it in a goroutine.
func (s *Subscriber) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		header := http.Header{}
		if s.apiKey != "" {
			header.Set("X-API-Key", s.apiKey)
		}

		conn, err := s.dial(ctx, s.url, header)
		if err != nil {
			if !s.scheduleRetry(ctx, err) {
				return
			}
			continue
		}

		s.resetAttempts()
		s.setConn(conn)
		s.logger.WithField("url", s.url).Info("Connected to agent stream")

		s.readLoop(ctx, conn)
		s.setConn(nil)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		if !s.scheduleRetry(ctx, nil) {
			return
		}
	}
}

func (s *Subscriber) readLoop(ctx context.Context, conn wsConn) {
	for {
		if ctx.Err() != nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Warn("Agent stream closed unexpectedly")
			}
			return
		}

		s.dispatch(data)
	}
}

func (s *Subscriber) dispatch(data []byte) {
	var msg models.StreamMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.WithError(err).Warn("Dropping malformed stream message")
		return
	}

	switch msg.Type {
	case models.StreamTypeStatus:
		var update models.StatusUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			s.logger.WithError(err).Warn("Dropping malformed status message")
			return
		}
		s.handler.HandleStatus(update)

	case models.StreamTypeStats:
		var stats models.StatsUpdate
		if err := json.Unmarshal(msg.Data, &stats); err != nil {
			s.logger.WithError(err).Warn("Dropping malformed stats message")
			return
		}
		s.handler.HandleStats(stats)

	case models.StreamTypeLog:
		var entry models.LogEntry
		if err := json.Unmarshal(msg.Data, &entry); err != nil {
			s.logger.WithError(err).Warn("Dropping malformed log message")
			return
		}
		s.handler.HandleLog(entry)

	default:
		s.logger.WithField("type", msg.Type).Debug("Ignoring unknown stream message type")
	}
}

// scheduleRetry waits out the backoff for the next attempt. It returns
// false once the attempt budget is spent or the context is cancelled.
func (s *Subscriber) scheduleRetry(ctx context.Context, cause error) bool {
	s.mu.Lock()
	s.attempts++
	attempt := s.attempts
	s.mu.Unlock()

	if s.onReconnect != nil {
		s.onReconnect()
	}

	if attempt > s.maxAttempts {
		s.logger.WithField("attempts", s.maxAttempts).Error("Giving up on agent stream")
		return false
	}

	delay := s.nextDelay(attempt)
	entry := s.logger.WithFields(logrus.Fields{
		"attempt": attempt,
		"delay":   delay.String(),
	})
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Warn("Reconnecting to agent stream")

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

// nextDelay grows linearly with the attempt count. No jitter; the
// attempt budget keeps the worst case bounded.
func (s *Subscriber) nextDelay(attempt int) time.Duration {
	return s.baseDelay * time.Duration(attempt)
}

// Send writes an envelope to the agent. Messages sent while the
// subscription is down are dropped with a warning; nothing the dashboard
// sends needs to survive a reconnect.
func (s *Subscriber) Send(msgType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(models.StreamMessage{Type: msgType, Data: payload})
	if err != nil {
		return err
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		s.logger.WithField("type", msgType).Warn("Agent stream not connected, dropping outbound message")
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, envelope)
}

func (s *Subscriber) setConn(conn wsConn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *Subscriber) resetAttempts() {
	s.mu.Lock()
	s.attempts = 0
	s.mu.Unlock()
}

// Attempts reports the current consecutive failure count.
func (s *Subscriber) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}
