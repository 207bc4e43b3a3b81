package store

import (
	"sync"
	"time"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// StatusStore holds the merged view of the agent's status as seen from
// the push channel (websocket) and the pull channel (scheduled poll).
// Updates are shallow merges: absent fields keep their current value, and
// the nested stats counters merge key-wise so a partial push never
// clobbers counters the other channel just wrote. There is no version
// token; the last update to arrive wins.
type StatusStore struct {
	mu      sync.RWMutex
	status  models.BotStatus
	updated time.Time
}

func NewStatusStore() *StatusStore {
	return &StatusStore{
		status: models.BotStatus{
			Status: models.BotStateStopped,
		},
	}
}

// Apply merges a partial update into the current status.
func (s *StatusStore) Apply(update models.StatusUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Running != nil {
		s.status.Running = *update.Running
	}
	if update.Status != nil {
		s.status.Status = *update.Status
	}
	if update.LastCheck != nil {
		t := *update.LastCheck
		s.status.LastCheck = &t
	}
	if update.Stats != nil {
		s.applyStats(update.Stats)
	}
	s.updated = time.Now()
}

// ApplyStats merges a counters-only update.
func (s *StatusStore) ApplyStats(stats models.StatsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyStats(&stats)
	s.updated = time.Now()
}

func (s *StatusStore) applyStats(stats *models.StatsUpdate) {
	if stats.SlotsFound != nil {
		s.status.Stats.SlotsFound = *stats.SlotsFound
	}
	if stats.AppointmentsBooked != nil {
		s.status.Stats.AppointmentsBooked = *stats.AppointmentsBooked
	}
	if stats.ActiveUsers != nil {
		s.status.Stats.ActiveUsers = *stats.ActiveUsers
	}
}

// Get returns a copy of the current merged status.
func (s *StatusStore) Get() models.BotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	if s.status.LastCheck != nil {
		t := *s.status.LastCheck
		status.LastCheck = &t
	}
	return status
}

// UpdatedAt reports when the store last changed.
func (s *StatusStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}
