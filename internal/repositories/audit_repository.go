package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// AuditRepository defines the interface for audit trail data access
type AuditRepository interface {
	Record(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter models.AuditFilter) ([]*models.AuditLog, error)
	Count(ctx context.Context, filter models.AuditFilter) (int, error)
	Stats(ctx context.Context) (*models.AuditStats, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor, action, target, detail, client_ip, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.Actor, entry.Action, entry.Target, entry.Detail, entry.ClientIP, entry.RequestID,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}

func (r *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]*models.AuditLog, error) {
	where, args := buildAuditWhere(filter)

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT id, actor, action, target, COALESCE(detail, ''), COALESCE(client_ip, ''), COALESCE(request_id, ''), created_at
		FROM audit_logs
		%s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		err := rows.Scan(
			&entry.ID, &entry.Actor, &entry.Action, &entry.Target,
			&entry.Detail, &entry.ClientIP, &entry.RequestID, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return entries, nil
}

func (r *auditRepository) Count(ctx context.Context, filter models.AuditFilter) (int, error) {
	where, args := buildAuditWhere(filter)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}

	return count, nil
}

func (r *auditRepository) Stats(ctx context.Context) (*models.AuditStats, error) {
	stats := &models.AuditStats{
		ActionCounts: make(map[string]int),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE),
			COUNT(DISTINCT actor)
		FROM audit_logs
	`).Scan(&stats.TotalEntries, &stats.EntriesToday, &stats.DistinctActors)
	if err != nil {
		return nil, fmt.Errorf("audit totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT action, COUNT(*)
		FROM audit_logs
		GROUP BY action
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("audit action counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scan action count: %w", err)
		}
		stats.ActionCounts[action] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return stats, nil
}

func (r *auditRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_logs WHERE created_at < NOW() - ($1 || ' days')::interval`, days)
	if err != nil {
		return 0, fmt.Errorf("delete old audit logs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}

func buildAuditWhere(filter models.AuditFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Actor != "" {
		args = append(args, filter.Actor)
		clauses = append(clauses, fmt.Sprintf("actor = $%d", len(args)))
	}
	if len(filter.Actions) > 0 {
		args = append(args, pq.Array(filter.Actions))
		clauses = append(clauses, fmt.Sprintf("action = ANY($%d)", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
