package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
)

// AuditService records who did what on the dashboard. Recording is best
// effort: a failed write is logged, never bubbled to the caller, so an
// audit outage cannot block an operator action.
type AuditService struct {
	repo   repositories.AuditRepository
	logger *logrus.Logger
}

func NewAuditService(repo repositories.AuditRepository, logger *logrus.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record writes one audit entry.
func (s *AuditService) Record(actor, action, target, detail, clientIP, requestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := &models.AuditLog{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Detail:    detail,
		ClientIP:  clientIP,
		RequestID: requestID,
	}

	if err := s.repo.Record(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"actor":  actor,
			"action": action,
		}).Error("Failed to record audit entry")
	}
}

// List returns a filtered page of audit entries with the total count
// matching the filter.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]*models.AuditLog, int, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (s *AuditService) Stats(ctx context.Context) (*models.AuditStats, error) {
	return s.repo.Stats(ctx)
}

// Cleanup removes entries older than the retention window. Invoked by
// the cron scheduler.
func (s *AuditService) Cleanup(ctx context.Context, retentionDays int) error {
	removed, err := s.repo.DeleteOlderThan(ctx, retentionDays)
	if err != nil {
		return err
	}

	if removed > 0 {
		s.logger.WithFields(logrus.Fields{
			"removed":        removed,
			"retention_days": retentionDays,
		}).Info("Audit retention cleanup complete")
	}

	return nil
}
