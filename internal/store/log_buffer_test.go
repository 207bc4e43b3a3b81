package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

func makeEntries(start, count int) []models.LogEntry {
	entries := make([]models.LogEntry, count)
	for i := 0; i < count; i++ {
		entries[i] = models.LogEntry{
			Message:   fmt.Sprintf("entry-%d", start+i),
			Level:     "info",
			Timestamp: time.Now(),
		}
	}
	return entries
}

func TestLogBuffer_Add(t *testing.T) {
	buf := NewLogBuffer(3)

	for i := 0; i < 5; i++ {
		buf.Add(models.LogEntry{Message: fmt.Sprintf("entry-%d", i)})
	}

	if buf.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", buf.Len())
	}

	snapshot := buf.Snapshot()
	expected := []string{"entry-2", "entry-3", "entry-4"}
	for i, want := range expected {
		if snapshot[i].Message != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, snapshot[i].Message)
		}
	}
}

func TestLogBuffer_AddBatch(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		batches      [][]models.LogEntry
		expectLen    int
		expectOldest string
		expectNewest string
	}{
		{
			name:         "Under capacity",
			capacity:     10,
			batches:      [][]models.LogEntry{makeEntries(0, 4)},
			expectLen:    4,
			expectOldest: "entry-0",
			expectNewest: "entry-3",
		},
		{
			name:         "Single batch over capacity",
			capacity:     5,
			batches:      [][]models.LogEntry{makeEntries(0, 12)},
			expectLen:    5,
			expectOldest: "entry-7",
			expectNewest: "entry-11",
		},
		{
			name:     "Multiple batches over capacity",
			capacity: 5,
			batches: [][]models.LogEntry{
				makeEntries(0, 3),
				makeEntries(3, 3),
				makeEntries(6, 3),
			},
			expectLen:    5,
			expectOldest: "entry-4",
			expectNewest: "entry-8",
		},
		{
			name:      "Empty batch",
			capacity:  5,
			batches:   [][]models.LogEntry{nil},
			expectLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewLogBuffer(tt.capacity)
			for _, batch := range tt.batches {
				buf.AddBatch(batch)
			}

			if buf.Len() != tt.expectLen {
				t.Fatalf("Expected length %d, got %d", tt.expectLen, buf.Len())
			}
			if tt.expectLen == 0 {
				return
			}

			snapshot := buf.Snapshot()
			if snapshot[0].Message != tt.expectOldest {
				t.Errorf("Expected oldest %s, got %s", tt.expectOldest, snapshot[0].Message)
			}
			if snapshot[len(snapshot)-1].Message != tt.expectNewest {
				t.Errorf("Expected newest %s, got %s", tt.expectNewest, snapshot[len(snapshot)-1].Message)
			}
		})
	}
}

func TestLogBuffer_NeverExceedsCapacity(t *testing.T) {
	buf := NewLogBuffer(DefaultLogCapacity)

	for i := 0; i < 20; i++ {
		buf.AddBatch(makeEntries(i*100, 100))
		if buf.Len() > DefaultLogCapacity {
			t.Fatalf("Buffer exceeded capacity after batch %d: %d", i, buf.Len())
		}
	}

	if buf.Len() != DefaultLogCapacity {
		t.Errorf("Expected full buffer of %d, got %d", DefaultLogCapacity, buf.Len())
	}

	// The newest entry must be the last one appended.
	snapshot := buf.Snapshot()
	if got := snapshot[len(snapshot)-1].Message; got != "entry-1999" {
		t.Errorf("Expected newest entry-1999, got %s", got)
	}
}

func TestLogBuffer_Tail(t *testing.T) {
	buf := NewLogBuffer(10)
	buf.AddBatch(makeEntries(0, 10))

	tail := buf.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(tail))
	}
	if tail[0].Message != "entry-7" || tail[2].Message != "entry-9" {
		t.Errorf("Unexpected tail window: %s .. %s", tail[0].Message, tail[2].Message)
	}

	all := buf.Tail(0)
	if len(all) != 10 {
		t.Errorf("Expected full buffer for n=0, got %d", len(all))
	}
}

func TestLogBuffer_Clear(t *testing.T) {
	buf := NewLogBuffer(10)
	buf.AddBatch(makeEntries(0, 5))
	buf.Clear()

	if buf.Len() != 0 {
		t.Errorf("Expected empty buffer after clear, got %d", buf.Len())
	}
}
