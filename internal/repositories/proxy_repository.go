package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// ProxyRepository defines the interface for proxy data access
type ProxyRepository interface {
	GetAll(ctx context.Context) ([]*models.Proxy, error)
	GetByID(ctx context.Context, id int) (*models.Proxy, error)
	Create(ctx context.Context, proxy *models.Proxy) error
	Update(ctx context.Context, proxy *models.Proxy) error
	IncrementFailCount(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type proxyRepository struct {
	db *sql.DB
}

// NewProxyRepository creates a new proxy repository
func NewProxyRepository(db *sql.DB) ProxyRepository {
	return &proxyRepository{db: db}
}

const proxyColumns = `id, host, port, COALESCE(username, ''), COALESCE(password, ''), protocol,
	is_active, fail_count, last_used_at, created_at, updated_at`

func (r *proxyRepository) GetAll(ctx context.Context) ([]*models.Proxy, error) {
	query := `SELECT ` + proxyColumns + ` FROM proxies ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query proxies: %w", err)
	}
	defer rows.Close()

	var proxies []*models.Proxy
	for rows.Next() {
		proxy := &models.Proxy{}
		err := rows.Scan(
			&proxy.ID, &proxy.Host, &proxy.Port, &proxy.Username, &proxy.Password,
			&proxy.Protocol, &proxy.IsActive, &proxy.FailCount, &proxy.LastUsedAt,
			&proxy.CreatedAt, &proxy.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan proxy: %w", err)
		}
		proxies = append(proxies, proxy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return proxies, nil
}

func (r *proxyRepository) GetByID(ctx context.Context, id int) (*models.Proxy, error) {
	query := `SELECT ` + proxyColumns + ` FROM proxies WHERE id = $1`

	proxy := &models.Proxy{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proxy.ID, &proxy.Host, &proxy.Port, &proxy.Username, &proxy.Password,
		&proxy.Protocol, &proxy.IsActive, &proxy.FailCount, &proxy.LastUsedAt,
		&proxy.CreatedAt, &proxy.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get proxy by id: %w", err)
	}

	return proxy, nil
}

func (r *proxyRepository) Create(ctx context.Context, proxy *models.Proxy) error {
	query := `
		INSERT INTO proxies (host, port, username, password, protocol, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (host, port) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		proxy.Host, proxy.Port, proxy.Username, proxy.Password, proxy.Protocol, proxy.IsActive,
	).Scan(&proxy.ID, &proxy.CreatedAt, &proxy.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("proxy already exists: %s:%d", proxy.Host, proxy.Port)
	}
	if err != nil {
		return fmt.Errorf("create proxy: %w", err)
	}

	return nil
}

func (r *proxyRepository) Update(ctx context.Context, proxy *models.Proxy) error {
	query := `
		UPDATE proxies
		SET host = $1, port = $2, username = $3, password = $4, protocol = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		proxy.Host, proxy.Port, proxy.Username, proxy.Password,
		proxy.Protocol, proxy.IsActive, proxy.ID,
	).Scan(&proxy.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("proxy not found: %d", proxy.ID)
	}
	if err != nil {
		return fmt.Errorf("update proxy: %w", err)
	}

	return nil
}

func (r *proxyRepository) IncrementFailCount(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE proxies SET fail_count = fail_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment proxy fail count: %w", err)
	}
	return nil
}

func (r *proxyRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM proxies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proxy: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("proxy not found: %d", id)
	}

	return nil
}
