package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// DefaultNotificationCapacity matches the dashboard's notification drawer.
const DefaultNotificationCapacity = 50

// NotificationStore keeps a bounded, newest-first notification list per
// user with an incrementally maintained unread counter. Evicting an
// unread entry decrements the counter, so unreadCount always equals the
// number of unread entries actually present.
type NotificationStore struct {
	mu       sync.RWMutex
	byUser   map[int][]models.Notification
	unread   map[int]int
	capacity int
}

func NewNotificationStore(capacity int) *NotificationStore {
	if capacity <= 0 {
		capacity = DefaultNotificationCapacity
	}
	return &NotificationStore{
		byUser:   make(map[int][]models.Notification),
		unread:   make(map[int]int),
		capacity: capacity,
	}
}

// Add prepends a notification for the user and returns it with its
// assigned ID and timestamp.
func (s *NotificationStore) Add(userID int, title, message string, typ models.NotificationType) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		Read:      false,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]models.Notification{n}, s.byUser[userID]...)
	s.unread[userID]++

	if len(list) > s.capacity {
		for _, evicted := range list[s.capacity:] {
			if !evicted.Read {
				s.unread[userID]--
			}
		}
		list = list[:s.capacity]
	}

	s.byUser[userID] = list
	return n
}

// Load replaces a user's list with persisted entries, newest first.
func (s *NotificationStore) Load(userID int, notifications []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(notifications) > s.capacity {
		notifications = notifications[:s.capacity]
	}

	list := make([]models.Notification, len(notifications))
	copy(list, notifications)

	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}

	s.byUser[userID] = list
	s.unread[userID] = unread
}

// MarkRead marks one notification read. Returns false if not present.
func (s *NotificationStore) MarkRead(userID int, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		if list[i].ID == id {
			if !list[i].Read {
				list[i].Read = true
				s.unread[userID]--
			}
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification for the user read.
func (s *NotificationStore) MarkAllRead(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		list[i].Read = true
	}
	s.unread[userID] = 0
}

// Remove deletes one notification. Returns false if not present.
func (s *NotificationStore) Remove(userID int, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		if list[i].ID == id {
			if !list[i].Read {
				s.unread[userID]--
			}
			s.byUser[userID] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the user's notifications, newest first.
func (s *NotificationStore) List(userID int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byUser[userID]
	out := make([]models.Notification, len(list))
	copy(out, list)
	return out
}

// UnreadCount reports the number of unread notifications for the user.
func (s *NotificationStore) UnreadCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread[userID]
}
