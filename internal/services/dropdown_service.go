package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/botclient"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// DropdownService proxies the agent's reference-data sync, which keeps
// the centers and visa categories offered in the dashboard's dropdowns
// aligned with the booking portal.
type DropdownService struct {
	agent  *botclient.Client
	logger *logrus.Logger
}

func NewDropdownService(agent *botclient.Client, logger *logrus.Logger) *DropdownService {
	return &DropdownService{agent: agent, logger: logger}
}

func (s *DropdownService) Status(ctx context.Context) (*models.DropdownSyncStatus, error) {
	return s.agent.DropdownSyncStatus(ctx)
}

func (s *DropdownService) Trigger(ctx context.Context) error {
	if err := s.agent.TriggerDropdownSync(ctx); err != nil {
		return err
	}
	s.logger.Info("Dropdown sync triggered")
	return nil
}
