package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/botclient"
	"github.com/slotpilot/bot-dashboard-backend/internal/hub"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/store"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

// BotService owns the merged live view of the agent and proxies control
// operations to it. It is the StreamHandler for the push channel and the
// target of the scheduled status poll, reconciling both into the same
// stores before fanning the result out to dashboard clients.
type BotService struct {
	agent    *botclient.Client
	status   *store.StatusStore
	logs     *store.LogBuffer
	hub      *hub.Hub
	notifier *NotificationService
	webhooks *WebhookService
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

func NewBotService(
	agent *botclient.Client,
	status *store.StatusStore,
	logs *store.LogBuffer,
	h *hub.Hub,
	notifier *NotificationService,
	webhooks *WebhookService,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *BotService {
	return &BotService{
		agent:    agent,
		status:   status,
		logs:     logs,
		hub:      h,
		notifier: notifier,
		webhooks: webhooks,
		metrics:  m,
		logger:   logger,
	}
}

// HandleStatus reconciles a pushed status update. Part of the
// botclient.StreamHandler contract.
func (s *BotService) HandleStatus(update models.StatusUpdate) {
	prev := s.status.Get()
	s.status.Apply(update)
	current := s.status.Get()

	s.metrics.UpdateBotState(string(current.Status), current.Running)
	s.hub.Broadcast(models.StreamTypeStatus, current)

	if prev.Status != models.BotStateError && current.Status == models.BotStateError {
		s.notifier.NotifyAll("Bot error", "The booking agent reported an error state", models.NotificationError)
		go s.webhooks.Dispatch(context.Background(), models.WebhookEventBotError, current)
	}
	if prev.Running && !current.Running {
		go s.webhooks.Dispatch(context.Background(), models.WebhookEventBotStopped, current)
	}
}

// HandleStats reconciles a pushed counters-only update.
func (s *BotService) HandleStats(stats models.StatsUpdate) {
	prev := s.status.Get().Stats
	s.status.ApplyStats(stats)
	current := s.status.Get()

	s.metrics.UpdateBotStats(current.Stats.SlotsFound, current.Stats.AppointmentsBooked, current.Stats.ActiveUsers)
	s.hub.Broadcast(models.StreamTypeStats, current.Stats)

	if current.Stats.AppointmentsBooked > prev.AppointmentsBooked {
		s.notifier.NotifyAll(
			"Appointment booked",
			fmt.Sprintf("Total bookings: %d", current.Stats.AppointmentsBooked),
			models.NotificationSuccess,
		)
		go s.webhooks.Dispatch(context.Background(), models.WebhookEventBooked, current.Stats)
	}
	if current.Stats.SlotsFound > prev.SlotsFound {
		go s.webhooks.Dispatch(context.Background(), models.WebhookEventSlotFound, current.Stats)
	}
}

// HandleLog appends a pushed log line to the ring and fans it out.
func (s *BotService) HandleLog(entry models.LogEntry) {
	s.logs.Add(entry)
	s.hub.Broadcast(models.StreamTypeLog, entry)
}

// Poll fetches the agent's status over REST (the pull channel) and
// merges it like any other update. Invoked by the cron scheduler.
func (s *BotService) Poll(ctx context.Context) error {
	start := time.Now()
	update, err := s.agent.Status(ctx)
	s.metrics.RecordAgentPoll(err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("poll agent status: %w", err)
	}

	if update.LastCheck == nil {
		now := time.Now()
		update.LastCheck = &now
	}
	s.HandleStatus(*update)

	return nil
}

// Start asks the agent to start and reflects the transition immediately.
func (s *BotService) Start(ctx context.Context) error {
	if err := s.agent.Start(ctx); err != nil {
		return err
	}

	running := true
	state := models.BotStateRunning
	s.HandleStatus(models.StatusUpdate{Running: &running, Status: &state})

	s.logger.Info("Bot started")
	return nil
}

// Stop asks the agent to stop and reflects the transition immediately.
func (s *BotService) Stop(ctx context.Context) error {
	if err := s.agent.Stop(ctx); err != nil {
		return err
	}

	running := false
	state := models.BotStateStopped
	s.HandleStatus(models.StatusUpdate{Running: &running, Status: &state})

	s.logger.Info("Bot stopped")
	return nil
}

// Status returns the merged view plus the most recent log lines.
func (s *BotService) Status(tailLines int) (models.BotStatus, []models.LogEntry) {
	return s.status.Get(), s.logs.Tail(tailLines)
}

// Settings fetches the agent's settings.
func (s *BotService) Settings(ctx context.Context) (*models.BotSettings, error) {
	return s.agent.Settings(ctx)
}

// UpdateSettings pushes new settings to the agent.
func (s *BotService) UpdateSettings(ctx context.Context, settings *models.BotSettings) error {
	return s.agent.UpdateSettings(ctx, settings)
}
