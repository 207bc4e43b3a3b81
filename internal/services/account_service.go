package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
)

// AccountService manages the portal credential pool the agent draws from.
type AccountService struct {
	repo   repositories.AccountRepository
	logger *logrus.Logger
}

func NewAccountService(repo repositories.AccountRepository, logger *logrus.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

func (s *AccountService) List(ctx context.Context) ([]*models.VFSAccount, error) {
	return s.repo.GetAll(ctx)
}

func (s *AccountService) Get(ctx context.Context, id int) (*models.VFSAccount, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new portal account. The password is stored as
// provided: the agent needs it verbatim to log in to the portal, so it
// cannot be hashed here.
func (s *AccountService) Create(ctx context.Context, req *models.CreateVFSAccountRequest) (*models.VFSAccount, error) {
	account := &models.VFSAccount{
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
		Mission:  req.Mission,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.WithField("email", account.Email).Info("Portal account added")
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("account_id", id).Info("Portal account removed")
	return nil
}
