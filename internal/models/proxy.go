package models

import "time"

// Proxy is an upstream proxy the agent rotates through.
type Proxy struct {
	ID         int        `json:"id" db:"id"`
	Host       string     `json:"host" db:"host"`
	Port       int        `json:"port" db:"port"`
	Username   string     `json:"username,omitempty" db:"username"`
	Password   string     `json:"-" db:"password"`
	Protocol   string     `json:"protocol" db:"protocol"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	FailCount  int        `json:"failCount" db:"fail_count"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateProxyRequest struct {
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required,min=1,max=65535"`
	Username string `json:"username"`
	Password string `json:"password"`
	Protocol string `json:"protocol" binding:"required,oneof=http https socks5"`
}

type UpdateProxyRequest struct {
	Host     *string `json:"host"`
	Port     *int    `json:"port"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Protocol *string `json:"protocol"`
	IsActive *bool   `json:"isActive"`
}
