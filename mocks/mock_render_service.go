package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/service"
)

// MockRenderService is a mock implementation of service.RenderService.
type MockRenderService struct {
	mock.Mock
}

func (m *MockRenderService) QuotationPDF(ctx context.Context, tenantID, id uuid.UUID, opts service.RenderOptions) (*service.RenderedDocument, error) {
	args := m.Called(ctx, tenantID, id, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}

func (m *MockRenderService) InvoicePDF(ctx context.Context, tenantID, id uuid.UUID, opts service.RenderOptions) (*service.RenderedDocument, error) {
	args := m.Called(ctx, tenantID, id, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}

func (m *MockRenderService) AdHocPDF(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, input service.AdHocPDFInput) (*service.RenderedDocument, error) {
	args := m.Called(ctx, tenantID, docType, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}
