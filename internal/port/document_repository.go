package port

import (
	"context"

	"github.com/google/uuid"

	"quotely/internal/domain"
)

// QuotationRepository persists quotation aggregates (header plus line items).
// Create and Update run in a single transaction each; a failure on any row
// discards the whole write.
type QuotationRepository interface {
	// Create reserves the next QT number for the tenant and the year of
	// q.CreatedAt, then inserts the header and its items. On success q.ID and
	// q.Number are set.
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.DocumentPatch) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// InvoiceRepository persists invoice aggregates (header plus line items).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.DocumentPatch) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
