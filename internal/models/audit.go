package models

import "time"

// AuditLog records one operator or system action.
type AuditLog struct {
	ID        int       `json:"id" db:"id"`
	Actor     string    `json:"actor" db:"actor"`
	Action    string    `json:"action" db:"action"`
	Target    string    `json:"target" db:"target"`
	Detail    string    `json:"detail,omitempty" db:"detail"`
	ClientIP  string    `json:"clientIp,omitempty" db:"client_ip"`
	RequestID string    `json:"requestId,omitempty" db:"request_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

const (
	AuditActionBotStart       = "bot.start"
	AuditActionBotStop        = "bot.stop"
	AuditActionSettingsUpdate = "bot.settings.update"
	AuditActionLogin          = "auth.login"
	AuditActionLoginFailed    = "auth.login.failed"
	AuditActionLogout         = "auth.logout"
	AuditActionAccountCreate  = "account.create"
	AuditActionAccountDelete  = "account.delete"
	AuditActionProxyCreate    = "proxy.create"
	AuditActionProxyUpdate    = "proxy.update"
	AuditActionProxyDelete    = "proxy.delete"
	AuditActionWebhookCreate  = "webhook.create"
	AuditActionWebhookUpdate  = "webhook.update"
	AuditActionWebhookDelete  = "webhook.delete"
	AuditActionWebhookTest    = "webhook.test"
	AuditActionRequestCreate  = "appointment.create"
	AuditActionRequestUpdate  = "appointment.update"
	AuditActionRequestDelete  = "appointment.delete"
	AuditActionDropdownSync   = "dropdown.sync"
)

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	Actor   string
	Actions []string
	Since   *time.Time
	Until   *time.Time
	Limit   int
	Offset  int
}

// AuditStats aggregates audit activity for the dashboard tiles.
type AuditStats struct {
	TotalEntries   int            `json:"totalEntries"`
	EntriesToday   int            `json:"entriesToday"`
	ActionCounts   map[string]int `json:"actionCounts"`
	DistinctActors int            `json:"distinctActors"`
}
