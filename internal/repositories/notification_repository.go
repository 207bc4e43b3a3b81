package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// NotificationRepository persists the bounded per-user notification list
// so the dashboard drawer survives a restart.
type NotificationRepository interface {
	GetForUser(ctx context.Context, userID, limit int) ([]models.Notification, error)
	Save(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, userID int, id string) error
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, userID int, id string) error
	TrimToNewest(ctx context.Context, userID, keep int) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetForUser(ctx context.Context, userID, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) Save(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.Read, n.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID int, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID int, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// TrimToNewest mirrors the in-memory eviction in storage: only the
// newest keep rows per user survive.
func (r *notificationRepository) TrimToNewest(ctx context.Context, userID, keep int) error {
	query := `
		DELETE FROM notifications
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`

	_, err := r.db.ExecContext(ctx, query, userID, keep)
	if err != nil {
		return fmt.Errorf("trim notifications: %w", err)
	}
	return nil
}
