package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

func TestWebhookService_DeliverySignsPayload(t *testing.T) {
	var (
		gotSignature string
		gotEvent     string
		gotBody      []byte
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEvent = r.Header.Get("X-Webhook-Event")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	svc := NewWebhookService(nil, logger)

	webhook := &models.Webhook{
		ID:     1,
		URL:    server.URL,
		Secret: "shared-secret",
	}

	status, err := svc.deliver(context.Background(), webhook, models.WebhookEventSlotFound, map[string]int{"slots": 3})
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if status != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", status)
	}
	if gotEvent != models.WebhookEventSlotFound {
		t.Errorf("Expected event header %s, got %s", models.WebhookEventSlotFound, gotEvent)
	}

	mac := hmac.New(sha256.New, []byte("shared-secret"))
	mac.Write(gotBody)
	want := hex.EncodeToString(mac.Sum(nil))
	if gotSignature != want {
		t.Errorf("Signature mismatch: got %s want %s", gotSignature, want)
	}

	var payload struct {
		Event string         `json:"event"`
		Data  map[string]int `json:"data"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal delivered body: %v", err)
	}
	if payload.Event != models.WebhookEventSlotFound || payload.Data["slots"] != 3 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestWebhookService_DeliveryWithoutSecretIsUnsigned(t *testing.T) {
	var signaturePresent bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, signaturePresent = r.Header["X-Webhook-Signature"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	svc := NewWebhookService(nil, logger)

	webhook := &models.Webhook{ID: 2, URL: server.URL}
	if _, err := svc.deliver(context.Background(), webhook, "test", nil); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if signaturePresent {
		t.Error("Expected no signature header without a secret")
	}
}

func TestValidateEvents(t *testing.T) {
	if err := validateEvents([]string{models.WebhookEventSlotFound, models.WebhookEventBooked}); err != nil {
		t.Errorf("Expected known events to validate, got %v", err)
	}

	err := validateEvents([]string{models.WebhookEventSlotFound, "made_up_event"})
	if err == nil {
		t.Fatal("Expected unknown event to be rejected")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.ErrCodeBadRequest {
		t.Errorf("Expected a bad request error, got %v", err)
	}
}
