package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/service"
)

// MockDeliveryService is a mock implementation of service.DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) Send(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, id uuid.UUID, input service.SendDocumentInput) (*domain.DeliveryReceipt, error) {
	args := m.Called(ctx, tenantID, docType, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryReceipt), args.Error(1)
}
