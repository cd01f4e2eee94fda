package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"quotely/internal/domain"
	"quotely/internal/port"
)

// CreateInvoiceInput is the DTO for creating an invoice. QuotationID records
// the source quotation; it is checked to exist for the tenant and is never
// changed afterwards.
type CreateInvoiceInput struct {
	DocumentFields
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	DueDate       *Date                `json:"due_date"`
	QuotationID   *uuid.UUID           `json:"quotation_id"`
}

// UpdateInvoiceInput is the DTO for updating an invoice.
type UpdateInvoiceInput struct {
	DocumentPatchFields
	PaymentStatus *domain.PaymentStatus `json:"payment_status"`
	DueDate       *Date                 `json:"due_date"`
}

// ConvertQuotationInput holds the invoice-only fields used when converting a
// stored quotation.
type ConvertQuotationInput struct {
	DocumentDate  *Date                `json:"document_date"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	DueDate       *Date                `json:"due_date"`
	Notes         *string              `json:"notes"`
}

// InvoiceService defines the invoice contract.
type InvoiceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	CreateFromQuotation(ctx context.Context, tenantID, quotationID uuid.UUID, input ConvertQuotationInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type invoiceService struct {
	repo          port.InvoiceRepository
	quotationRepo port.QuotationRepository
	opts          docOptions
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(repo port.InvoiceRepository, quotationRepo port.QuotationRepository, opts ...Option) InvoiceService {
	return &invoiceService{repo: repo, quotationRepo: quotationRepo, opts: applyOptions(opts)}
}

func (s *invoiceService) Create(ctx context.Context, tenantID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	status := input.PaymentStatus
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if !domain.ValidPaymentStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}

	if input.QuotationID != nil {
		if _, err := s.quotationRepo.GetByID(ctx, tenantID, *input.QuotationID); err != nil {
			return nil, err
		}
	}

	doc, err := buildDocument(tenantID, s.opts.now().UTC(), &input.DocumentFields)
	if err != nil {
		return nil, err
	}
	inv := &domain.Invoice{
		Document:      doc,
		PaymentStatus: status,
		DueDate:       dateOrNil(input.DueDate),
		QuotationID:   input.QuotationID,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}
	return s.repo.GetByID(ctx, tenantID, inv.ID)
}

// CreateFromQuotation copies a stored quotation's customer, amounts and items
// into a new invoice that references it. The quotation itself is not changed.
func (s *invoiceService) CreateFromQuotation(ctx context.Context, tenantID, quotationID uuid.UUID, input ConvertQuotationInput) (*domain.Invoice, error) {
	q, err := s.quotationRepo.GetByID(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}

	items := make([]LineItemInput, len(q.Items))
	for i, it := range q.Items {
		sortOrder := it.SortOrder
		items[i] = LineItemInput{
			InventoryID: it.InventoryID,
			ItemCode:    it.ItemCode,
			ItemName:    it.ItemName,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			SortOrder:   &sortOrder,
		}
	}

	notes := q.Notes
	if input.Notes != nil {
		notes = *input.Notes
	}

	return s.Create(ctx, tenantID, CreateInvoiceInput{
		DocumentFields: DocumentFields{
			DocumentDate:    input.DocumentDate,
			CustomerName:    q.CustomerName,
			CustomerPhone:   q.CustomerPhone,
			CustomerAddress: q.CustomerAddress,
			TaxPercent:      q.TaxPercent,
			DiscountAmount:  q.DiscountAmount,
			Notes:           notes,
			Items:           items,
		},
		PaymentStatus: input.PaymentStatus,
		DueDate:       input.DueDate,
		QuotationID:   &q.ID,
	})
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *invoiceService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	patch, err := buildPatch(&input.DocumentPatchFields)
	if err != nil {
		return nil, err
	}
	if input.PaymentStatus != nil {
		if !domain.ValidPaymentStatuses[*input.PaymentStatus] {
			return nil, domain.ErrInvalidStatus
		}
		status := string(*input.PaymentStatus)
		patch.Status = &status
	}
	patch.DueDate = dateOrNil(input.DueDate)

	if patch.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	if err := s.repo.Update(ctx, tenantID, id, patch); err != nil {
		return nil, fmt.Errorf("invoice.Update: %w", err)
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *invoiceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}
