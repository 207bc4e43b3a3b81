package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
)

// ProxyService manages the upstream proxy pool.
type ProxyService struct {
	repo   repositories.ProxyRepository
	logger *logrus.Logger
}

func NewProxyService(repo repositories.ProxyRepository, logger *logrus.Logger) *ProxyService {
	return &ProxyService{repo: repo, logger: logger}
}

func (s *ProxyService) List(ctx context.Context) ([]*models.Proxy, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProxyService) Get(ctx context.Context, id int) (*models.Proxy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProxyService) Create(ctx context.Context, req *models.CreateProxyRequest) (*models.Proxy, error) {
	proxy := &models.Proxy{
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		Protocol: req.Protocol,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, proxy); err != nil {
		return nil, fmt.Errorf("create proxy: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"host": proxy.Host,
		"port": proxy.Port,
	}).Info("Proxy added")

	return proxy, nil
}

func (s *ProxyService) Update(ctx context.Context, id int, req *models.UpdateProxyRequest) (*models.Proxy, error) {
	proxy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proxy == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("Proxy %d not found", id))
	}

	if req.Host != nil {
		proxy.Host = *req.Host
	}
	if req.Port != nil {
		proxy.Port = *req.Port
	}
	if req.Username != nil {
		proxy.Username = *req.Username
	}
	if req.Password != nil {
		proxy.Password = *req.Password
	}
	if req.Protocol != nil {
		proxy.Protocol = *req.Protocol
	}
	if req.IsActive != nil {
		proxy.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, proxy); err != nil {
		return nil, err
	}

	return proxy, nil
}

// RecordFailure bumps a proxy's failure counter, typically on a report
// from the agent that a proxy is dead.
func (s *ProxyService) RecordFailure(ctx context.Context, id int) error {
	return s.repo.IncrementFailCount(ctx, id)
}

func (s *ProxyService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("proxy_id", id).Info("Proxy removed")
	return nil
}
