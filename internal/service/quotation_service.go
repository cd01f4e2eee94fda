package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"quotely/internal/domain"
	"quotely/internal/port"
)

// CreateQuotationInput is the DTO for creating a quotation.
type CreateQuotationInput struct {
	DocumentFields
	Status     domain.QuotationStatus `json:"status"`
	ValidUntil *Date                  `json:"valid_until"`
}

// UpdateQuotationInput is the DTO for updating a quotation.
type UpdateQuotationInput struct {
	DocumentPatchFields
	Status     *domain.QuotationStatus `json:"status"`
	ValidUntil *Date                   `json:"valid_until"`
}

// QuotationService defines the quotation contract.
type QuotationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateQuotationInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateQuotationInput) (*domain.Quotation, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type quotationService struct {
	repo port.QuotationRepository
	opts docOptions
}

// NewQuotationService creates a new QuotationService implementation.
func NewQuotationService(repo port.QuotationRepository, opts ...Option) QuotationService {
	return &quotationService{repo: repo, opts: applyOptions(opts)}
}

func (s *quotationService) Create(ctx context.Context, tenantID uuid.UUID, input CreateQuotationInput) (*domain.Quotation, error) {
	status := input.Status
	if status == "" {
		status = domain.QuotationStatusDraft
	}
	if !domain.ValidQuotationStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}

	doc, err := buildDocument(tenantID, s.opts.now().UTC(), &input.DocumentFields)
	if err != nil {
		return nil, err
	}
	q := &domain.Quotation{
		Document:   doc,
		Status:     status,
		ValidUntil: dateOrNil(input.ValidUntil),
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("quotation.Create: %w", err)
	}
	return s.repo.GetByID(ctx, tenantID, q.ID)
}

func (s *quotationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *quotationService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *quotationService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateQuotationInput) (*domain.Quotation, error) {
	patch, err := buildPatch(&input.DocumentPatchFields)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		if !domain.ValidQuotationStatuses[*input.Status] {
			return nil, domain.ErrInvalidStatus
		}
		status := string(*input.Status)
		patch.Status = &status
	}
	patch.ValidUntil = dateOrNil(input.ValidUntil)

	if patch.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	if err := s.repo.Update(ctx, tenantID, id, patch); err != nil {
		return nil, fmt.Errorf("quotation.Update: %w", err)
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *quotationService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}
