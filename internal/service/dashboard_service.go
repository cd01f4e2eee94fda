package service

import (
	"context"

	"github.com/google/uuid"

	"quotely/internal/domain"
	"quotely/internal/port"
)

// DashboardService provides a tenant's collection and pipeline figures.
type DashboardService interface {
	GetSummary(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardSummary, error)
}

type dashboardService struct {
	repo port.DashboardRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(repo port.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetSummary(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardSummary, error) {
	return s.repo.GetSummary(ctx, tenantID)
}
