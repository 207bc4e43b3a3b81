package botclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

type nopHandler struct{}

func (nopHandler) HandleStatus(models.StatusUpdate) {}
func (nopHandler) HandleStats(models.StatsUpdate)   {}
func (nopHandler) HandleLog(models.LogEntry)        {}

type recordingHandler struct {
	mu       sync.Mutex
	statuses []models.StatusUpdate
	stats    []models.StatsUpdate
	logs     []models.LogEntry
}

func (h *recordingHandler) HandleStatus(u models.StatusUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, u)
}

func (h *recordingHandler) HandleStats(s models.StatsUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = append(h.stats, s)
}

func (h *recordingHandler) HandleLog(e models.LogEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, e)
}

func testSubscriber(handler StreamHandler, base time.Duration, maxAttempts int) *Subscriber {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewSubscriber(&config.AgentConfig{
		WSURL:         "ws://agent.test/ws",
		ReconnectBase: base,
		MaxReconnects: maxAttempts,
	}, handler, logger)
}

func TestSubscriber_NextDelayGrowsLinearly(t *testing.T) {
	s := testSubscriber(nopHandler{}, 3*time.Second, 5)

	var prev time.Duration
	for attempt := 1; attempt <= 5; attempt++ {
		delay := s.nextDelay(attempt)

		expected := time.Duration(attempt) * 3 * time.Second
		if delay != expected {
			t.Errorf("Attempt %d: expected delay %v, got %v", attempt, expected, delay)
		}
		if delay <= prev {
			t.Errorf("Attempt %d: expected strictly increasing delay, got %v after %v", attempt, delay, prev)
		}
		prev = delay
	}
}

func TestSubscriber_GivesUpAfterMaxAttempts(t *testing.T) {
	s := testSubscriber(nopHandler{}, time.Millisecond, 3)

	dials := 0
	s.dial = func(ctx context.Context, url string, header http.Header) (wsConn, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not give up within the attempt budget")
	}

	// One initial dial plus one per scheduled retry.
	if dials != 4 {
		t.Errorf("Expected 4 dial attempts (1 + 3 retries), got %d", dials)
	}
}

func TestSubscriber_ResetAttemptsOnOpen(t *testing.T) {
	s := testSubscriber(nopHandler{}, time.Second, 5)

	s.mu.Lock()
	s.attempts = 4
	s.mu.Unlock()

	s.resetAttempts()

	if got := s.Attempts(); got != 0 {
		t.Errorf("Expected attempts reset to 0, got %d", got)
	}
}

func TestSubscriber_Dispatch(t *testing.T) {
	handler := &recordingHandler{}
	s := testSubscriber(handler, time.Second, 5)

	tests := []struct {
		name    string
		payload string
	}{
		{"status", `{"type":"status","data":{"running":true,"status":"running"}}`},
		{"stats", `{"type":"stats","data":{"slots_found":3}}`},
		{"log", `{"type":"log","data":{"message":"slot check complete","level":"info","timestamp":"2026-08-23T10:00:00Z"}}`},
		{"unknown type ignored", `{"type":"ping","data":{}}`},
		{"malformed dropped", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.dispatch([]byte(tt.payload))
		})
	}

	if len(handler.statuses) != 1 {
		t.Fatalf("Expected 1 status, got %d", len(handler.statuses))
	}
	if handler.statuses[0].Running == nil || !*handler.statuses[0].Running {
		t.Error("Expected running=true in dispatched status")
	}

	if len(handler.stats) != 1 {
		t.Fatalf("Expected 1 stats, got %d", len(handler.stats))
	}
	if handler.stats[0].SlotsFound == nil || *handler.stats[0].SlotsFound != 3 {
		t.Error("Expected slots_found=3 in dispatched stats")
	}

	if len(handler.logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(handler.logs))
	}
	if handler.logs[0].Message != "slot check complete" {
		t.Errorf("Unexpected log message: %s", handler.logs[0].Message)
	}
}

func TestSubscriber_SendWhileDisconnected(t *testing.T) {
	s := testSubscriber(nopHandler{}, time.Second, 5)

	// No connection established; the message is dropped, not an error.
	if err := s.Send("command", map[string]string{"op": "noop"}); err != nil {
		t.Errorf("Expected silent drop, got %v", err)
	}
}
