package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/service"
)

// MockDraftService is a mock implementation of service.DraftService.
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) DraftQuotation(ctx context.Context, tenantID uuid.UUID, input service.DraftQuotationInput) (*domain.QuotationDraft, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuotationDraft), args.Error(1)
}
