package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
)

// MockExportService is a mock implementation of service.ExportService. A
// string first return value is written to w before the error is returned.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, tenantID, docType, format, w)
	if body, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}
