package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// WebhookRepository defines the interface for webhook data access
type WebhookRepository interface {
	GetAll(ctx context.Context) ([]*models.Webhook, error)
	GetActiveForEvent(ctx context.Context, event string) ([]*models.Webhook, error)
	GetByID(ctx context.Context, id int) (*models.Webhook, error)
	Create(ctx context.Context, webhook *models.Webhook) error
	Update(ctx context.Context, webhook *models.Webhook) error
	RecordDelivery(ctx context.Context, id, status int, failed bool) error
	Delete(ctx context.Context, id int) error
}

type webhookRepository struct {
	db *sql.DB
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(db *sql.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

const webhookColumns = `id, url, events, COALESCE(secret, ''), is_active, fail_count,
	last_status, last_fired_at, created_at, updated_at`

func (r *webhookRepository) GetAll(ctx context.Context) ([]*models.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query webhooks: %w", err)
	}
	defer rows.Close()

	return r.scanWebhooks(rows)
}

func (r *webhookRepository) GetActiveForEvent(ctx context.Context, event string) ([]*models.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE is_active = true AND $1 = ANY(events)`

	rows, err := r.db.QueryContext(ctx, query, event)
	if err != nil {
		return nil, fmt.Errorf("query webhooks for event: %w", err)
	}
	defer rows.Close()

	return r.scanWebhooks(rows)
}

func (r *webhookRepository) GetByID(ctx context.Context, id int) (*models.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id = $1`

	webhook := &models.Webhook{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&webhook.ID, &webhook.URL, pq.Array(&webhook.Events), &webhook.Secret,
		&webhook.IsActive, &webhook.FailCount, &webhook.LastStatus,
		&webhook.LastFiredAt, &webhook.CreatedAt, &webhook.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get webhook by id: %w", err)
	}

	return webhook, nil
}

func (r *webhookRepository) Create(ctx context.Context, webhook *models.Webhook) error {
	query := `
		INSERT INTO webhooks (url, events, secret, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		webhook.URL, pq.Array(webhook.Events), webhook.Secret, webhook.IsActive,
	).Scan(&webhook.ID, &webhook.CreatedAt, &webhook.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create webhook: %w", err)
	}

	return nil
}

func (r *webhookRepository) Update(ctx context.Context, webhook *models.Webhook) error {
	query := `
		UPDATE webhooks
		SET url = $1, events = $2, secret = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		webhook.URL, pq.Array(webhook.Events), webhook.Secret, webhook.IsActive, webhook.ID,
	).Scan(&webhook.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("webhook not found: %d", webhook.ID)
	}
	if err != nil {
		return fmt.Errorf("update webhook: %w", err)
	}

	return nil
}

func (r *webhookRepository) RecordDelivery(ctx context.Context, id, status int, failed bool) error {
	query := `
		UPDATE webhooks
		SET last_status = $1,
			last_fired_at = NOW(),
			fail_count = CASE WHEN $2 THEN fail_count + 1 ELSE 0 END,
			updated_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, failed, id)
	if err != nil {
		return fmt.Errorf("record webhook delivery: %w", err)
	}
	return nil
}

func (r *webhookRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("webhook not found: %d", id)
	}

	return nil
}

func (r *webhookRepository) scanWebhooks(rows *sql.Rows) ([]*models.Webhook, error) {
	var webhooks []*models.Webhook

	for rows.Next() {
		webhook := &models.Webhook{}
		err := rows.Scan(
			&webhook.ID, &webhook.URL, pq.Array(&webhook.Events), &webhook.Secret,
			&webhook.IsActive, &webhook.FailCount, &webhook.LastStatus,
			&webhook.LastFiredAt, &webhook.CreatedAt, &webhook.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan webhook: %w", err)
		}
		webhooks = append(webhooks, webhook)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return webhooks, nil
}
