package models

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Preference holds per-user dashboard settings that the UI reads back
// on login (the theme toggle, notification sound).
type Preference struct {
	UserID            int       `json:"-" db:"user_id"`
	Theme             string    `json:"theme" db:"theme"`
	NotificationSound bool      `json:"notificationSound" db:"notification_sound"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}
