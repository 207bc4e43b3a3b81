package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

// CronScheduler drives the pull channel and housekeeping: a frequent
// agent status poll plus a daily audit retention sweep.
type CronScheduler struct {
	cron           *cron.Cron
	bot            *services.BotService
	audit          *services.AuditService
	cfg            *config.Config
	metrics        *metrics.Metrics
	logger         *logrus.Logger
	jobTimeout     time.Duration
	activeJobs     sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

func NewCronScheduler(
	bot *services.BotService,
	audit *services.AuditService,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &CronScheduler{
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		bot:            bot,
		audit:          audit,
		cfg:            cfg,
		metrics:        m,
		logger:         logger,
		jobTimeout:     5 * time.Minute,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
}

func (s *CronScheduler) Start() {
	// The status poll backstops the push channel: if the stream is down
	// the dashboard still converges on the agent's real state.
	_, err := s.cron.AddFunc(s.cfg.Agent.PollSchedule, s.createJobWrapper("Agent Status Poll", func(ctx context.Context) error {
		return s.bot.Poll(ctx)
	}))
	if err != nil {
		s.logger.WithError(err).Error("Failed to schedule agent status poll")
	}

	_, err = s.cron.AddFunc(s.cfg.Audit.CleanupSchedule, s.createJobWrapper("Audit Retention Cleanup", func(ctx context.Context) error {
		return s.audit.Cleanup(ctx, s.cfg.Audit.RetentionDays)
	}))
	if err != nil {
		s.logger.WithError(err).Error("Failed to schedule audit retention cleanup")
	}

	s.cron.Start()
	s.logger.Info("Cron scheduler started successfully")
}

// createJobWrapper wraps a job with context, timeout, logging, and panic recovery
func (s *CronScheduler) createJobWrapper(jobName string, jobFunc func(context.Context) error) func() {
	return func() {
		s.activeJobs.Add(1)
		defer s.activeJobs.Done()

		ctx, cancel := context.WithTimeout(s.shutdownCtx, s.jobTimeout)
		defer cancel()

		startTime := time.Now()

		s.logger.WithFields(logrus.Fields{
			"job":       jobName,
			"timestamp": startTime.UTC(),
		}).Debug("Starting scheduled job")

		defer func() {
			if r := recover(); r != nil {
				s.logger.WithFields(logrus.Fields{
					"job":   jobName,
					"panic": r,
				}).Error("Job panicked")
			}
		}()

		err := jobFunc(ctx)
		duration := time.Since(startTime)
		s.metrics.RecordSchedulerJob(jobName, err == nil, duration)

		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"job":      jobName,
				"duration": duration.String(),
				"error":    err.Error(),
			}).Error("Job failed")
		} else {
			s.logger.WithFields(logrus.Fields{
				"job":      jobName,
				"duration": duration.String(),
			}).Debug("Job completed successfully")
		}

		if ctx.Err() == context.DeadlineExceeded {
			s.logger.WithFields(logrus.Fields{
				"job":     jobName,
				"timeout": s.jobTimeout.String(),
			}).Warn("Job timed out")
		}
	}
}

func (s *CronScheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")

	ctx := s.cron.Stop()
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.activeJobs.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("All jobs completed, cron scheduler stopped")
	case <-ctx.Done():
		s.logger.Info("Cron scheduler stopped")
	case <-time.After(1 * time.Minute):
		s.logger.Warn("Timeout waiting for jobs to complete, forcing shutdown")
	}
}

// Status reports the scheduler's registered jobs for diagnostics.
func (s *CronScheduler) Status() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
