package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
	"github.com/slotpilot/bot-dashboard-backend/internal/validate"
)

const dateLayout = "2006-01-02"

// AppointmentService manages applicants' standing slot requests.
// Create and Update run the same field validation the dashboard shows
// inline, so a request never reaches the agent with a bad phone number,
// passport number, or payment card.
type AppointmentService struct {
	repo   repositories.AppointmentRepository
	logger *logrus.Logger
}

func NewAppointmentService(repo repositories.AppointmentRepository, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

func (s *AppointmentService) List(ctx context.Context) ([]*models.AppointmentRequest, error) {
	return s.repo.GetAll(ctx)
}

func (s *AppointmentService) ListByStatus(ctx context.Context, status string) ([]*models.AppointmentRequest, error) {
	return s.repo.GetByStatus(ctx, status)
}

func (s *AppointmentService) Get(ctx context.Context, id int) (*models.AppointmentRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentRequest, error) {
	fields := validate.AppointmentFields(req.Phone, req.PassportNumber)
	if req.Card != nil {
		if result := validate.Card(*req.Card); !result.Valid {
			for field, msg := range result.Errors {
				fields["card."+field] = msg
			}
		}
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Appointment request has invalid fields", fields)
	}

	earliest, latest, err := parseDateWindow(req.EarliestDate, req.LatestDate)
	if err != nil {
		return nil, models.NewValidationError("Appointment request has invalid fields",
			map[string]string{"dateWindow": err.Error()})
	}

	request := &models.AppointmentRequest{
		FullName:       req.FullName,
		PassportNumber: req.PassportNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Center:         req.Center,
		VisaCategory:   req.VisaCategory,
		EarliestDate:   earliest,
		LatestDate:     latest,
		Status:         models.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create appointment request: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"center":     request.Center,
	}).Info("Appointment request created")

	return request, nil
}

func (s *AppointmentService) Update(ctx context.Context, id int, req *models.CreateAppointmentRequest) (*models.AppointmentRequest, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("Appointment request %d not found", id))
	}

	fields := validate.AppointmentFields(req.Phone, req.PassportNumber)
	if len(fields) > 0 {
		return nil, models.NewValidationError("Appointment request has invalid fields", fields)
	}

	earliest, latest, err := parseDateWindow(req.EarliestDate, req.LatestDate)
	if err != nil {
		return nil, models.NewValidationError("Appointment request has invalid fields",
			map[string]string{"dateWindow": err.Error()})
	}

	existing.FullName = req.FullName
	existing.PassportNumber = req.PassportNumber
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Center = req.Center
	existing.VisaCategory = req.VisaCategory
	existing.EarliestDate = earliest
	existing.LatestDate = latest

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id int, status string) error {
	switch status {
	case models.AppointmentStatusPending, models.AppointmentStatusBooked, models.AppointmentStatusCancelled:
	default:
		return models.NewBadRequestError(fmt.Sprintf("Unknown status: %s", status))
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *AppointmentService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ValidateCard runs the card checks standalone for form-time feedback.
func (s *AppointmentService) ValidateCard(card models.Card) validate.CardResult {
	return validate.Card(card)
}

func parseDateWindow(earliest, latest string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if earliest != "" {
		t, err := time.Parse(dateLayout, earliest)
		if err != nil {
			return nil, nil, fmt.Errorf("earliest date must be YYYY-MM-DD")
		}
		from = &t
	}
	if latest != "" {
		t, err := time.Parse(dateLayout, latest)
		if err != nil {
			return nil, nil, fmt.Errorf("latest date must be YYYY-MM-DD")
		}
		to = &t
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("latest date is before earliest date")
	}

	return from, to, nil
}
