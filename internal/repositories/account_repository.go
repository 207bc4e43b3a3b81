package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// AccountRepository defines the interface for VFS account data access
type AccountRepository interface {
	GetAll(ctx context.Context) ([]*models.VFSAccount, error)
	GetActive(ctx context.Context) ([]*models.VFSAccount, error)
	GetByID(ctx context.Context, id int) (*models.VFSAccount, error)
	Create(ctx context.Context, account *models.VFSAccount) error
	Delete(ctx context.Context, id int) error
	TouchLastUsed(ctx context.Context, id int) error
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new VFS account repository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, password, country, mission, is_active, last_used_at, created_at, updated_at`

func (r *accountRepository) GetAll(ctx context.Context) ([]*models.VFSAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM vfs_accounts ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	return r.scanAccounts(rows)
}

func (r *accountRepository) GetActive(ctx context.Context) ([]*models.VFSAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM vfs_accounts WHERE is_active = true ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active accounts: %w", err)
	}
	defer rows.Close()

	return r.scanAccounts(rows)
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*models.VFSAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM vfs_accounts WHERE id = $1`

	account := &models.VFSAccount{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.Password, &account.Country,
		&account.Mission, &account.IsActive, &account.LastUsedAt,
		&account.CreatedAt, &account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.VFSAccount) error {
	query := `
		INSERT INTO vfs_accounts (email, password, country, mission, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.Password, account.Country, account.Mission, account.IsActive,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("account already exists: %s", account.Email)
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vfs_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account not found: %d", id)
	}

	return nil
}

func (r *accountRepository) TouchLastUsed(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vfs_accounts SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch account: %w", err)
	}
	return nil
}

func (r *accountRepository) scanAccounts(rows *sql.Rows) ([]*models.VFSAccount, error) {
	var accounts []*models.VFSAccount

	for rows.Next() {
		account := &models.VFSAccount{}
		err := rows.Scan(
			&account.ID, &account.Email, &account.Password, &account.Country,
			&account.Mission, &account.IsActive, &account.LastUsedAt,
			&account.CreatedAt, &account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return accounts, nil
}
