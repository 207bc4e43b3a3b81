package store

import (
	"fmt"
	"testing"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

const testUser = 1

func TestNotificationStore_UnreadCount(t *testing.T) {
	s := NewNotificationStore(10)

	n1 := s.Add(testUser, "Slot found", "Ankara 2026-09-01", models.NotificationSuccess)
	s.Add(testUser, "Booking failed", "card declined", models.NotificationError)

	if got := s.UnreadCount(testUser); got != 2 {
		t.Fatalf("Expected 2 unread, got %d", got)
	}

	if !s.MarkRead(testUser, n1.ID) {
		t.Fatal("Expected MarkRead to find the notification")
	}
	if got := s.UnreadCount(testUser); got != 1 {
		t.Errorf("Expected 1 unread after MarkRead, got %d", got)
	}

	// Marking an already-read entry must not decrement again.
	s.MarkRead(testUser, n1.ID)
	if got := s.UnreadCount(testUser); got != 1 {
		t.Errorf("Expected 1 unread after double MarkRead, got %d", got)
	}
}

func TestNotificationStore_EvictionDecrementsUnread(t *testing.T) {
	s := NewNotificationStore(3)

	// Fill to capacity, mark the oldest one read.
	oldest := s.Add(testUser, "n0", "m", models.NotificationInfo)
	s.Add(testUser, "n1", "m", models.NotificationInfo)
	s.Add(testUser, "n2", "m", models.NotificationInfo)
	s.MarkRead(testUser, oldest.ID)

	if got := s.UnreadCount(testUser); got != 2 {
		t.Fatalf("Expected 2 unread before eviction, got %d", got)
	}

	// This add evicts the read oldest entry: unread goes 2 -> 3.
	s.Add(testUser, "n3", "m", models.NotificationInfo)
	if got := s.UnreadCount(testUser); got != 3 {
		t.Errorf("Expected 3 unread after evicting a read entry, got %d", got)
	}

	// This add evicts an unread entry: counter must follow.
	s.Add(testUser, "n4", "m", models.NotificationInfo)
	if got := s.UnreadCount(testUser); got != 3 {
		t.Errorf("Expected 3 unread after evicting an unread entry, got %d", got)
	}

	list := s.List(testUser)
	if len(list) != 3 {
		t.Fatalf("Expected list length 3, got %d", len(list))
	}
	if list[0].Title != "n4" {
		t.Errorf("Expected newest first, got %s", list[0].Title)
	}
}

func TestNotificationStore_CounterMatchesListInvariant(t *testing.T) {
	s := NewNotificationStore(5)

	var ids []string
	for i := 0; i < 12; i++ {
		n := s.Add(testUser, fmt.Sprintf("n%d", i), "m", models.NotificationInfo)
		ids = append(ids, n.ID)
		if i%3 == 0 {
			s.MarkRead(testUser, n.ID)
		}
		if i%4 == 0 {
			s.Remove(testUser, ids[len(ids)/2])
		}

		unread := 0
		for _, entry := range s.List(testUser) {
			if !entry.Read {
				unread++
			}
		}
		if got := s.UnreadCount(testUser); got != unread {
			t.Fatalf("Step %d: counter %d does not match list unread %d", i, got, unread)
		}
	}
}

func TestNotificationStore_MarkAllRead(t *testing.T) {
	s := NewNotificationStore(5)

	s.Add(testUser, "a", "m", models.NotificationInfo)
	s.Add(testUser, "b", "m", models.NotificationWarning)
	s.MarkAllRead(testUser)

	if got := s.UnreadCount(testUser); got != 0 {
		t.Errorf("Expected 0 unread after MarkAllRead, got %d", got)
	}
	for _, n := range s.List(testUser) {
		if !n.Read {
			t.Errorf("Expected %s to be read", n.Title)
		}
	}
}

func TestNotificationStore_Load(t *testing.T) {
	s := NewNotificationStore(3)

	persisted := []models.Notification{
		{ID: "a", Read: false},
		{ID: "b", Read: true},
		{ID: "c", Read: false},
		{ID: "d", Read: false},
	}
	s.Load(testUser, persisted)

	if got := len(s.List(testUser)); got != 3 {
		t.Fatalf("Expected load to respect capacity, got %d", got)
	}
	if got := s.UnreadCount(testUser); got != 2 {
		t.Errorf("Expected 2 unread after load, got %d", got)
	}
}

func TestNotificationStore_UserIsolation(t *testing.T) {
	s := NewNotificationStore(5)

	s.Add(1, "for-one", "m", models.NotificationInfo)
	s.Add(2, "for-two", "m", models.NotificationInfo)

	if got := s.UnreadCount(1); got != 1 {
		t.Errorf("Expected user 1 to have 1 unread, got %d", got)
	}
	if got := len(s.List(2)); got != 1 {
		t.Errorf("Expected user 2 to have 1 notification, got %d", got)
	}
}
