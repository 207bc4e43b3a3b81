package store

import (
	"testing"
	"time"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

func boolPtr(b bool) *bool                        { return &b }
func intPtr(i int) *int                           { return &i }
func statePtr(s models.BotState) *models.BotState { return &s }

func TestStatusStore_Apply_ShallowMerge(t *testing.T) {
	s := NewStatusStore()

	s.Apply(models.StatusUpdate{
		Running: boolPtr(true),
		Status:  statePtr(models.BotStateRunning),
		Stats: &models.StatsUpdate{
			SlotsFound:         intPtr(10),
			AppointmentsBooked: intPtr(2),
			ActiveUsers:        intPtr(5),
		},
	})

	// A partial update must not clobber fields it does not carry.
	s.Apply(models.StatusUpdate{
		Status: statePtr(models.BotStateIdle),
	})

	got := s.Get()
	if !got.Running {
		t.Error("Expected running to survive a partial update")
	}
	if got.Status != models.BotStateIdle {
		t.Errorf("Expected status idle, got %s", got.Status)
	}
	if got.Stats.SlotsFound != 10 {
		t.Errorf("Expected slots_found 10, got %d", got.Stats.SlotsFound)
	}
}

func TestStatusStore_Apply_StatsMergeKeywise(t *testing.T) {
	s := NewStatusStore()

	s.Apply(models.StatusUpdate{
		Stats: &models.StatsUpdate{
			SlotsFound:         intPtr(7),
			AppointmentsBooked: intPtr(3),
			ActiveUsers:        intPtr(12),
		},
	})

	// A push carrying only one counter must leave the others intact.
	s.Apply(models.StatusUpdate{
		Stats: &models.StatsUpdate{
			SlotsFound: intPtr(8),
		},
	})

	got := s.Get()
	if got.Stats.SlotsFound != 8 {
		t.Errorf("Expected slots_found 8, got %d", got.Stats.SlotsFound)
	}
	if got.Stats.AppointmentsBooked != 3 {
		t.Errorf("Expected appointments_booked 3, got %d", got.Stats.AppointmentsBooked)
	}
	if got.Stats.ActiveUsers != 12 {
		t.Errorf("Expected active_users 12, got %d", got.Stats.ActiveUsers)
	}
}

func TestStatusStore_LastWriteWins(t *testing.T) {
	s := NewStatusStore()

	// Poll result arrives first, then a newer push for the same field.
	s.Apply(models.StatusUpdate{Status: statePtr(models.BotStateRunning)})
	s.Apply(models.StatusUpdate{Status: statePtr(models.BotStateError)})

	if got := s.Get().Status; got != models.BotStateError {
		t.Errorf("Expected last write to win, got %s", got)
	}
}

func TestStatusStore_ApplyStats(t *testing.T) {
	s := NewStatusStore()

	s.ApplyStats(models.StatsUpdate{AppointmentsBooked: intPtr(1)})
	s.ApplyStats(models.StatsUpdate{SlotsFound: intPtr(4)})

	got := s.Get()
	if got.Stats.AppointmentsBooked != 1 || got.Stats.SlotsFound != 4 {
		t.Errorf("Unexpected stats after counter-only updates: %+v", got.Stats)
	}
}

func TestStatusStore_LastCheckCopied(t *testing.T) {
	s := NewStatusStore()

	now := time.Now()
	s.Apply(models.StatusUpdate{LastCheck: &now})

	got := s.Get()
	if got.LastCheck == nil {
		t.Fatal("Expected last_check to be set")
	}
	if got.LastCheck == &now {
		t.Error("Expected Get to return a copy, not the caller's pointer")
	}
	if !got.LastCheck.Equal(now) {
		t.Errorf("Expected last_check %v, got %v", now, *got.LastCheck)
	}
}
