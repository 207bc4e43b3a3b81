package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// AppointmentRepository defines the interface for appointment request data access
type AppointmentRepository interface {
	GetAll(ctx context.Context) ([]*models.AppointmentRequest, error)
	GetByID(ctx context.Context, id int) (*models.AppointmentRequest, error)
	GetByStatus(ctx context.Context, status string) ([]*models.AppointmentRequest, error)
	Create(ctx context.Context, req *models.AppointmentRequest) error
	Update(ctx context.Context, req *models.AppointmentRequest) error
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

type appointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository creates a new appointment request repository
func NewAppointmentRepository(db *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `id, full_name, passport_number, phone, email, center, visa_category,
	earliest_date, latest_date, status, booked_at, created_at, updated_at`

func (r *appointmentRepository) GetAll(ctx context.Context) ([]*models.AppointmentRequest, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointment_requests ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query appointment requests: %w", err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int) (*models.AppointmentRequest, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointment_requests WHERE id = $1`

	req := &models.AppointmentRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.FullName, &req.PassportNumber, &req.Phone, &req.Email,
		&req.Center, &req.VisaCategory, &req.EarliestDate, &req.LatestDate,
		&req.Status, &req.BookedAt, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment request by id: %w", err)
	}

	return req, nil
}

func (r *appointmentRepository) GetByStatus(ctx context.Context, status string) ([]*models.AppointmentRequest, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointment_requests WHERE status = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("query appointment requests by status: %w", err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

func (r *appointmentRepository) Create(ctx context.Context, req *models.AppointmentRequest) error {
	query := `
		INSERT INTO appointment_requests
			(full_name, passport_number, phone, email, center, visa_category,
			 earliest_date, latest_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		req.FullName, req.PassportNumber, req.Phone, req.Email,
		req.Center, req.VisaCategory, req.EarliestDate, req.LatestDate, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create appointment request: %w", err)
	}

	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, req *models.AppointmentRequest) error {
	query := `
		UPDATE appointment_requests
		SET full_name = $1, passport_number = $2, phone = $3, email = $4,
			center = $5, visa_category = $6, earliest_date = $7, latest_date = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		req.FullName, req.PassportNumber, req.Phone, req.Email,
		req.Center, req.VisaCategory, req.EarliestDate, req.LatestDate, req.ID,
	).Scan(&req.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("appointment request not found: %d", req.ID)
	}
	if err != nil {
		return fmt.Errorf("update appointment request: %w", err)
	}

	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE appointment_requests
		SET status = $1,
			booked_at = CASE WHEN $1 = 'booked' THEN NOW() ELSE booked_at END,
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment request not found: %d", id)
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment request not found: %d", id)
	}

	return nil
}

func (r *appointmentRepository) scanRequests(rows *sql.Rows) ([]*models.AppointmentRequest, error) {
	var requests []*models.AppointmentRequest

	for rows.Next() {
		req := &models.AppointmentRequest{}
		err := rows.Scan(
			&req.ID, &req.FullName, &req.PassportNumber, &req.Phone, &req.Email,
			&req.Center, &req.VisaCategory, &req.EarliestDate, &req.LatestDate,
			&req.Status, &req.BookedAt, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return requests, nil
}
