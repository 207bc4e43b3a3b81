package models

import "time"

// VFSAccount is a credential set the agent uses against the booking portal.
type VFSAccount struct {
	ID         int        `json:"id" db:"id"`
	Email      string     `json:"email" db:"email"`
	Password   string     `json:"-" db:"password"`
	Country    string     `json:"country" db:"country"`
	Mission    string     `json:"mission" db:"mission"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateVFSAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Mission  string `json:"mission" binding:"required"`
}
