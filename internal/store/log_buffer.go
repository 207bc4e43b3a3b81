package store

import (
	"sync"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// DefaultLogCapacity matches the dashboard's log panel depth.
const DefaultLogCapacity = 500

// LogBuffer is a bounded, ordered log sequence. When an append pushes the
// length past capacity, the oldest entries are dropped from the front.
type LogBuffer struct {
	mu       sync.RWMutex
	entries  []models.LogEntry
	capacity int
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogBuffer{
		entries:  make([]models.LogEntry, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a single entry, evicting from the front if needed.
func (b *LogBuffer) Add(entry models.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry)
	b.trim()
}

// AddBatch appends many entries in order, evicting from the front if needed.
func (b *LogBuffer) AddBatch(entries []models.LogEntry) {
	if len(entries) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entries...)
	b.trim()
}

func (b *LogBuffer) trim() {
	if len(b.entries) > b.capacity {
		overflow := len(b.entries) - b.capacity
		b.entries = append(b.entries[:0], b.entries[overflow:]...)
	}
}

// Snapshot returns a copy of the buffered entries in append order.
func (b *LogBuffer) Snapshot() []models.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Tail returns up to n of the most recent entries in append order.
func (b *LogBuffer) Tail(n int) []models.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]models.LogEntry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Len reports the current number of buffered entries.
func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Clear drops all buffered entries.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
}
