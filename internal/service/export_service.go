package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"quotely/internal/domain"
	"quotely/internal/export"
	"quotely/internal/port"
)

const exportPageSize = 500

// ExportService streams a tenant's document register.
type ExportService interface {
	WriteRegister(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) error
}

type exportService struct {
	quotationRepo port.QuotationRepository
	invoiceRepo   port.InvoiceRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(quotationRepo port.QuotationRepository, invoiceRepo port.InvoiceRepository) ExportService {
	return &exportService{quotationRepo: quotationRepo, invoiceRepo: invoiceRepo}
}

func (s *exportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) error {
	var list func(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error)
	switch docType {
	case domain.DocumentTypeQuotation:
		list = s.quotationRepo.ListByTenant
	case domain.DocumentTypeInvoice:
		list = s.invoiceRepo.ListByTenant
	default:
		return fmt.Errorf("unknown document type %q", docType)
	}

	rw, err := export.NewWriter(w, format, docType)
	if err != nil {
		return err
	}
	if err := rw.WriteHeader(); err != nil {
		return fmt.Errorf("writing register header: %w", err)
	}

	for offset := 0; ; offset += exportPageSize {
		page, total, err := list(ctx, tenantID, offset, exportPageSize)
		if err != nil {
			return err
		}
		if err := rw.WriteSummaries(page); err != nil {
			return fmt.Errorf("writing register rows: %w", err)
		}
		if len(page) < exportPageSize || offset+len(page) >= total {
			break
		}
	}
	return rw.Close()
}
