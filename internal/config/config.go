package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Agent    AgentConfig
	Auth     AuthConfig
	Audit    AuditConfig
	Logger   LoggerConfig
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type ServerConfig struct {
	Host              string
	Port              int
	RequestTimeout    time.Duration
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// AgentConfig describes how to reach the external booking agent.
type AgentConfig struct {
	BaseURL           string
	WSURL             string
	APIKey            string
	PollSchedule      string
	ConnectionTimeout time.Duration
	MaxRetryAttempts  int
	ReconnectBase     time.Duration
	MaxReconnects     int
}

type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	LockoutAttempts int
	LockoutWindow   time.Duration
	LockoutDuration time.Duration
}

type AuditConfig struct {
	RetentionDays   int
	CleanupSchedule string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist in production
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	serverPort, _ := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	maxRetry, _ := strconv.Atoi(getEnv("AGENT_MAX_RETRY_ATTEMPTS", "3"))
	maxReconnects, _ := strconv.Atoi(getEnv("AGENT_MAX_RECONNECTS", "5"))
	lockoutAttempts, _ := strconv.Atoi(getEnv("AUTH_LOCKOUT_ATTEMPTS", "5"))
	rateLimitRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	auditRetentionDays, _ := strconv.Atoi(getEnv("AUDIT_RETENTION_DAYS", "90"))

	requestTimeout, _ := time.ParseDuration(getEnv("SERVER_REQUEST_TIMEOUT", "30s"))
	rateLimitWindow, _ := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	connTimeout, _ := time.ParseDuration(getEnv("AGENT_CONNECTION_TIMEOUT", "15s"))
	reconnectBase, _ := time.ParseDuration(getEnv("AGENT_RECONNECT_BASE", "3s"))
	tokenTTL, _ := time.ParseDuration(getEnv("AUTH_TOKEN_TTL", "24h"))
	lockoutWindow, _ := time.ParseDuration(getEnv("AUTH_LOCKOUT_WINDOW", "15m"))
	lockoutDuration, _ := time.ParseDuration(getEnv("AUTH_LOCKOUT_DURATION", "15m"))

	return &Config{
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           dbPort,
			User:           getEnv("DB_USER", "dashboard_user"),
			Password:       getEnv("DB_PASSWORD", "dashboard_password"),
			DBName:         getEnv("DB_NAME", "bot_dashboard"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Server: ServerConfig{
			Host:              getEnv("SERVER_HOST", "0.0.0.0"),
			Port:              serverPort,
			RequestTimeout:    requestTimeout,
			AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
			RateLimitRequests: rateLimitRequests,
			RateLimitWindow:   rateLimitWindow,
		},
		Agent: AgentConfig{
			BaseURL:           getEnv("AGENT_BASE_URL", "http://localhost:9000"),
			WSURL:             getEnv("AGENT_WS_URL", "ws://localhost:9000/ws"),
			APIKey:            getEnv("AGENT_API_KEY", ""),
			PollSchedule:      getEnv("AGENT_POLL_SCHEDULE", "@every 30s"),
			ConnectionTimeout: connTimeout,
			MaxRetryAttempts:  maxRetry,
			ReconnectBase:     reconnectBase,
			MaxReconnects:     maxReconnects,
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
			TokenTTL:        tokenTTL,
			LockoutAttempts: lockoutAttempts,
			LockoutWindow:   lockoutWindow,
			LockoutDuration: lockoutDuration,
		},
		Audit: AuditConfig{
			RetentionDays:   auditRetentionDays,
			CleanupSchedule: getEnv("AUDIT_CLEANUP_SCHEDULE", "0 4 * * *"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
