package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
	"github.com/slotpilot/bot-dashboard-backend/internal/store"
)

// NotificationService keeps the in-memory notification store and its
// persisted copy in sync. The store is the source of truth for the
// bounded list and unread counter; the repository makes it survive a
// restart.
type NotificationService struct {
	store    *store.NotificationStore
	repo     repositories.NotificationRepository
	userRepo repositories.UserRepository
	logger   *logrus.Logger

	// known users that should receive broadcast notifications; kept
	// current by EnsureLoaded on login.
	mu         sync.RWMutex
	knownUsers map[int]bool
}

func NewNotificationService(
	st *store.NotificationStore,
	repo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	logger *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		store:      st,
		repo:       repo,
		userRepo:   userRepo,
		logger:     logger,
		knownUsers: make(map[int]bool),
	}
}

// EnsureLoaded hydrates a user's list from storage on first sight.
func (s *NotificationService) EnsureLoaded(ctx context.Context, userID int) {
	s.mu.RLock()
	loaded := s.knownUsers[userID]
	s.mu.RUnlock()
	if loaded {
		return
	}

	persisted, err := s.repo.GetForUser(ctx, userID, store.DefaultNotificationCapacity)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to load notifications")
		return
	}

	s.store.Load(userID, persisted)

	s.mu.Lock()
	s.knownUsers[userID] = true
	s.mu.Unlock()
}

// Notify adds a notification for one user and persists it.
func (s *NotificationService) Notify(userID int, title, message string, typ models.NotificationType) {
	n := s.store.Add(userID, title, message, typ)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Save(ctx, &n); err != nil {
		s.logger.WithError(err).Error("Failed to persist notification")
		return
	}
	if err := s.repo.TrimToNewest(ctx, userID, store.DefaultNotificationCapacity); err != nil {
		s.logger.WithError(err).Error("Failed to trim persisted notifications")
	}
}

// NotifyAll fans a notification out to every known user.
func (s *NotificationService) NotifyAll(title, message string, typ models.NotificationType) {
	s.mu.RLock()
	users := make([]int, 0, len(s.knownUsers))
	for userID := range s.knownUsers {
		users = append(users, userID)
	}
	s.mu.RUnlock()

	for _, userID := range users {
		s.Notify(userID, title, message, typ)
	}
}

// List returns a user's notifications with the unread count.
func (s *NotificationService) List(ctx context.Context, userID int) ([]models.Notification, int) {
	s.EnsureLoaded(ctx, userID)
	return s.store.List(userID), s.store.UnreadCount(userID)
}

// MarkRead marks one notification read in memory and storage.
func (s *NotificationService) MarkRead(ctx context.Context, userID int, id string) bool {
	if !s.store.MarkRead(userID, id) {
		return false
	}
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		s.logger.WithError(err).Error("Failed to persist read state")
	}
	return true
}

// MarkAllRead marks every notification read in memory and storage.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) {
	s.store.MarkAllRead(userID)
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		s.logger.WithError(err).Error("Failed to persist read state")
	}
}

// Remove deletes one notification in memory and storage.
func (s *NotificationService) Remove(ctx context.Context, userID int, id string) bool {
	if !s.store.Remove(userID, id) {
		return false
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete persisted notification")
	}
	return true
}
