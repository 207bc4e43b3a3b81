package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
)

// webhookPayload is the body POSTed to subscriber endpoints.
type webhookPayload struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// WebhookService manages subscriber endpoints and delivers booking
// events to them. Deliveries are signed with the webhook's shared
// secret when one is configured; failures increment the webhook's
// fail counter but are never retried inline.
type WebhookService struct {
	repo       repositories.WebhookRepository
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewWebhookService(repo repositories.WebhookRepository, logger *logrus.Logger) *WebhookService {
	return &WebhookService{
		repo: repo,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

var knownWebhookEvents = map[string]bool{
	models.WebhookEventSlotFound:  true,
	models.WebhookEventBooked:     true,
	models.WebhookEventBotError:   true,
	models.WebhookEventBotStopped: true,
}

func validateEvents(events []string) error {
	for _, event := range events {
		if !knownWebhookEvents[event] {
			return models.NewBadRequestError(fmt.Sprintf("Unknown webhook event: %s", event))
		}
	}
	return nil
}

func (s *WebhookService) List(ctx context.Context) ([]*models.Webhook, error) {
	return s.repo.GetAll(ctx)
}

func (s *WebhookService) Get(ctx context.Context, id int) (*models.Webhook, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WebhookService) Create(ctx context.Context, req *models.CreateWebhookRequest) (*models.Webhook, error) {
	if err := validateEvents(req.Events); err != nil {
		return nil, err
	}

	webhook := &models.Webhook{
		URL:      req.URL,
		Events:   req.Events,
		Secret:   req.Secret,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, webhook); err != nil {
		return nil, fmt.Errorf("create webhook: %w", err)
	}

	s.logger.WithField("url", webhook.URL).Info("Webhook registered")
	return webhook, nil
}

func (s *WebhookService) Update(ctx context.Context, id int, req *models.UpdateWebhookRequest) (*models.Webhook, error) {
	webhook, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if webhook == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("Webhook %d not found", id))
	}

	if req.URL != nil {
		webhook.URL = *req.URL
	}
	if req.Events != nil {
		if err := validateEvents(req.Events); err != nil {
			return nil, err
		}
		webhook.Events = req.Events
	}
	if req.Secret != nil {
		webhook.Secret = *req.Secret
	}
	if req.IsActive != nil {
		webhook.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, webhook); err != nil {
		return nil, err
	}

	return webhook, nil
}

func (s *WebhookService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Dispatch delivers an event to every active webhook subscribed to it.
// Deliveries run sequentially; the caller is expected to invoke this
// off the request path.
func (s *WebhookService) Dispatch(ctx context.Context, event string, data interface{}) {
	webhooks, err := s.repo.GetActiveForEvent(ctx, event)
	if err != nil {
		s.logger.WithError(err).WithField("event", event).Error("Failed to load webhooks for event")
		return
	}

	for _, webhook := range webhooks {
		status, err := s.deliver(ctx, webhook, event, data)
		failed := err != nil || status >= 400

		if recErr := s.repo.RecordDelivery(ctx, webhook.ID, status, failed); recErr != nil {
			s.logger.WithError(recErr).WithField("webhook_id", webhook.ID).Error("Failed to record webhook delivery")
		}

		if failed {
			s.logger.WithFields(logrus.Fields{
				"webhook_id": webhook.ID,
				"event":      event,
				"status":     status,
			}).WithError(err).Warn("Webhook delivery failed")
		}
	}
}

// Test delivers a synthetic event to one webhook, active or not, and
// returns the HTTP status the endpoint answered with.
func (s *WebhookService) Test(ctx context.Context, id int) (int, error) {
	webhook, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if webhook == nil {
		return 0, models.NewNotFoundError(fmt.Sprintf("Webhook %d not found", id))
	}

	status, err := s.deliver(ctx, webhook, "test", map[string]string{"message": "Test delivery"})
	failed := err != nil || status >= 400

	if recErr := s.repo.RecordDelivery(ctx, webhook.ID, status, failed); recErr != nil {
		s.logger.WithError(recErr).WithField("webhook_id", webhook.ID).Error("Failed to record webhook delivery")
	}

	return status, err
}

func (s *WebhookService) deliver(ctx context.Context, webhook *models.Webhook, event string, data interface{}) (int, error) {
	body, err := json.Marshal(webhookPayload{
		Event:     event,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", event)
	if webhook.Secret != "" {
		req.Header.Set("X-Webhook-Signature", sign(webhook.Secret, body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// sign computes the hex HMAC-SHA256 of the payload under the webhook's
// shared secret. Receivers recompute it to authenticate deliveries.
func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
