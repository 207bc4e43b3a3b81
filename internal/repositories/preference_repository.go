package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// PreferenceRepository persists per-user dashboard preferences.
type PreferenceRepository interface {
	Get(ctx context.Context, userID int) (*models.Preference, error)
	Upsert(ctx context.Context, pref *models.Preference) error
}

type preferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sql.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID int) (*models.Preference, error) {
	query := `
		SELECT user_id, theme, notification_sound, updated_at
		FROM preferences
		WHERE user_id = $1
	`

	pref := &models.Preference{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&pref.UserID, &pref.Theme, &pref.NotificationSound, &pref.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Default preferences for users who never saved any.
		return &models.Preference{
			UserID:            userID,
			Theme:             "light",
			NotificationSound: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	return pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *models.Preference) error {
	query := `
		INSERT INTO preferences (user_id, theme, notification_sound, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			theme = EXCLUDED.theme,
			notification_sound = EXCLUDED.notification_sound,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		pref.UserID, pref.Theme, pref.NotificationSound,
	).Scan(&pref.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
