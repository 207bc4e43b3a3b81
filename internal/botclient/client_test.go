package botclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	pkgerrors "github.com/slotpilot/bot-dashboard-backend/pkg/errors"
)

func testClient(baseURL string, maxRetries int) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	c := NewClient(&config.AgentConfig{
		BaseURL:           baseURL,
		ConnectionTimeout: 5 * time.Second,
		MaxRetryAttempts:  maxRetries,
	}, logger)
	c.retryPause = time.Millisecond
	return c
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"running":true,"status":"running","stats":{"slots_found":5}}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	update, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if update.Running == nil || !*update.Running {
		t.Error("Expected running=true")
	}
	if update.Stats == nil || update.Stats.SlotsFound == nil || *update.Stats.SlotsFound != 5 {
		t.Error("Expected slots_found=5")
	}
	if update.Stats.ActiveUsers != nil {
		t.Error("Expected absent counters to stay nil")
	}
}

func TestClient_AuthFailureNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	err := client.Start(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 call for 401, got %d", calls)
	}

	var httpErr *pkgerrors.HTTPError
	if !pkgerrors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected HTTPError with 401, got %v", err)
	}
}

func TestClient_ServerErrorRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	if err := client.Stop(context.Background()); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestClient_RetryBudgetExhausted(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := testClient(server.URL, 2)
	if err := client.Start(context.Background()); err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestClient_RateLimitHonorsRetryAfter(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	if err := client.Start(context.Background()); err != nil {
		t.Fatalf("Expected success after rate limit cleared, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestClient_BadRequestNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	if err := client.Start(context.Background()); err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call for 4xx, got %d", calls)
	}
}
