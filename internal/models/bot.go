package models

import (
	"encoding/json"
	"time"
)

// BotState is the lifecycle state reported by the booking agent.
type BotState string

const (
	BotStateStopped BotState = "stopped"
	BotStateIdle    BotState = "idle"
	BotStateRunning BotState = "running"
	BotStateError   BotState = "error"
)

// BotStats holds the agent's aggregate counters.
type BotStats struct {
	SlotsFound         int `json:"slots_found"`
	AppointmentsBooked int `json:"appointments_booked"`
	ActiveUsers        int `json:"active_users"`
}

// BotStatus is the merged view of the push and poll channels.
type BotStatus struct {
	Running   bool       `json:"running"`
	Status    BotState   `json:"status"`
	LastCheck *time.Time `json:"last_check,omitempty"`
	Stats     BotStats   `json:"stats"`
}

// StatusUpdate is a partial status report. Nil fields were not present
// in the update and must not clobber existing state when merged.
type StatusUpdate struct {
	Running   *bool        `json:"running,omitempty"`
	Status    *BotState    `json:"status,omitempty"`
	LastCheck *time.Time   `json:"last_check,omitempty"`
	Stats     *StatsUpdate `json:"stats,omitempty"`
}

// StatsUpdate is a partial counter report, merged key-wise.
type StatsUpdate struct {
	SlotsFound         *int `json:"slots_found,omitempty"`
	AppointmentsBooked *int `json:"appointments_booked,omitempty"`
	ActiveUsers        *int `json:"active_users,omitempty"`
}

// BotSettings mirrors the agent's configurable behaviour.
type BotSettings struct {
	CheckInterval   int      `json:"check_interval"`
	Centers         []string `json:"centers"`
	VisaCategories  []string `json:"visa_categories"`
	AutoBook        bool     `json:"auto_book"`
	NotifyOnSlot    bool     `json:"notify_on_slot"`
	MaxBookPerCycle int      `json:"max_book_per_cycle"`
}

// LogEntry is one line from the agent's log stream.
type LogEntry struct {
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamMessage is the envelope used on both websocket legs:
// the agent subscription and the dashboard fan-out.
type StreamMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	StreamTypeStatus = "status"
	StreamTypeStats  = "stats"
	StreamTypeLog    = "log"
)

// DropdownSyncStatus reports the agent's reference-data sync job.
type DropdownSyncStatus struct {
	LastSync   *time.Time `json:"last_sync,omitempty"`
	InProgress bool       `json:"in_progress"`
	ItemCount  int        `json:"item_count"`
	LastError  string     `json:"last_error,omitempty"`
}
