package botclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	pkgerrors "github.com/slotpilot/bot-dashboard-backend/pkg/errors"
)

// Client talks to the external booking agent's REST API.
// Transient failures are retried up to maxRetries with a short pause;
// auth failures are surfaced immediately and never retried; rate limits
// wait out the server-supplied delay before retrying.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryPause time.Duration
	logger     *logrus.Logger
}

func NewClient(cfg *config.AgentConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnectionTimeout,
		},
		maxRetries: cfg.MaxRetryAttempts,
		retryPause: 2 * time.Second,
		logger:     logger,
	}
}

// Status fetches the agent's current status (the pull channel).
func (c *Client) Status(ctx context.Context) (*models.StatusUpdate, error) {
	var update models.StatusUpdate
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// Start asks the agent to begin its booking cycle.
func (c *Client) Start(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/bot/start", nil, nil)
}

// Stop asks the agent to halt its booking cycle.
func (c *Client) Stop(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/bot/stop", nil, nil)
}

// Settings fetches the agent's current settings.
func (c *Client) Settings(ctx context.Context) (*models.BotSettings, error) {
	var settings models.BotSettings
	if err := c.do(ctx, http.MethodGet, "/api/v1/bot/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the agent's settings.
func (c *Client) UpdateSettings(ctx context.Context, settings *models.BotSettings) error {
	return c.do(ctx, http.MethodPut, "/api/v1/bot/settings", settings, nil)
}

// DropdownSyncStatus fetches the agent's reference-data sync state.
func (c *Client) DropdownSyncStatus(ctx context.Context) (*models.DropdownSyncStatus, error) {
	var status models.DropdownSyncStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/dropdown-sync", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// TriggerDropdownSync asks the agent to refresh its reference data.
func (c *Client) TriggerDropdownSync(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/dropdown-sync", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !pkgerrors.IsRetryable(err) {
			return err
		}

		if attempt < c.maxRetries {
			pause := c.retryPause
			if after := pkgerrors.RetryAfter(err); after > 0 {
				pause = time.Duration(after) * time.Second
			}

			c.logger.WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"attempt": attempt,
				"pause":   pause.String(),
			}).WithError(err).Warn("Agent call failed, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}
		}
	}

	return fmt.Errorf("agent call failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		httpErr := &pkgerrors.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			if after, parseErr := strconv.Atoi(resp.Header.Get("Retry-After")); parseErr == nil {
				httpErr.RetryAfter = after
			}
		}
		return httpErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode agent response: %w", err)
		}
	}

	return nil
}
