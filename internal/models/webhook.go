package models

import "time"

// Webhook is an outbound notification target for booking events.
type Webhook struct {
	ID          int        `json:"id" db:"id"`
	URL         string     `json:"url" db:"url"`
	Events      []string   `json:"events" db:"events"`
	Secret      string     `json:"-" db:"secret"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	FailCount   int        `json:"failCount" db:"fail_count"`
	LastStatus  int        `json:"lastStatus" db:"last_status"`
	LastFiredAt *time.Time `json:"lastFiredAt,omitempty" db:"last_fired_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

const (
	WebhookEventSlotFound  = "slot_found"
	WebhookEventBooked     = "appointment_booked"
	WebhookEventBotError   = "bot_error"
	WebhookEventBotStopped = "bot_stopped"
)

type CreateWebhookRequest struct {
	URL    string   `json:"url" binding:"required,url"`
	Events []string `json:"events" binding:"required,min=1"`
	Secret string   `json:"secret"`
}

type UpdateWebhookRequest struct {
	URL      *string  `json:"url"`
	Events   []string `json:"events"`
	Secret   *string  `json:"secret"`
	IsActive *bool    `json:"isActive"`
}
