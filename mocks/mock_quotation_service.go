package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/service"
)

// MockQuotationService is a mock implementation of service.QuotationService.
type MockQuotationService struct {
	mock.Mock
}

func (m *MockQuotationService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateQuotationInput) (*domain.Quotation, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DocumentSummary), args.Int(1), args.Error(2)
}

func (m *MockQuotationService) Update(ctx context.Context, tenantID, id uuid.UUID, input service.UpdateQuotationInput) (*domain.Quotation, error) {
	args := m.Called(ctx, tenantID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
