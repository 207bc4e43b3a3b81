package scheduler

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		Agent: config.AgentConfig{PollSchedule: "@every 30s"},
		Audit: config.AuditConfig{RetentionDays: 90, CleanupSchedule: "0 4 * * *"},
	}
}

func TestNewCronScheduler(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	scheduler := NewCronScheduler(nil, nil, testConfig(), metrics.NewMetrics(), logger)

	if scheduler == nil {
		t.Fatal("Expected non-nil scheduler")
	}

	if scheduler.jobTimeout != 5*time.Minute {
		t.Errorf("Expected job timeout of 5 minutes, got %v", scheduler.jobTimeout)
	}

	if scheduler.cron == nil {
		t.Error("Expected non-nil cron instance")
	}
}

func TestCronScheduler_Status(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	scheduler := NewCronScheduler(nil, nil, testConfig(), metrics.NewMetrics(), logger)
	status := scheduler.Status()

	if status == nil {
		t.Fatal("Expected non-nil status")
	}

	if _, ok := status["running"]; !ok {
		t.Error("Expected 'running' key in status")
	}

	if _, ok := status["job_count"]; !ok {
		t.Error("Expected 'job_count' key in status")
	}

	if _, ok := status["jobs"]; !ok {
		t.Error("Expected 'jobs' key in status")
	}
}
