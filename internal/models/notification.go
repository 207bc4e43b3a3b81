package models

import "time"

// NotificationType drives the dashboard toast styling.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is one entry in a user's bounded notification list.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    int              `json:"-" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"read" db:"read"`
	Timestamp time.Time        `json:"timestamp" db:"created_at"`
}
