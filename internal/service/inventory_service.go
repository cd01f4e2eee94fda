package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotely/internal/domain"
	"quotely/internal/port"
)

// CreateInventoryInput is the DTO for adding a catalog entry.
type CreateInventoryInput struct {
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name" binding:"required"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockQty    int             `json:"stock_qty"`
	Description string          `json:"description"`
}

// UpdateInventoryInput is the DTO for a partial catalog update.
type UpdateInventoryInput struct {
	ItemCode    *string          `json:"item_code"`
	ItemName    *string          `json:"item_name"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	StockQty    *int             `json:"stock_qty"`
	Description *string          `json:"description"`
}

// InventoryService defines the catalog contract.
type InventoryService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInventoryInput) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.InventoryItem, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInventoryInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type inventoryService struct {
	repo port.InventoryRepository
}

// NewInventoryService creates a new InventoryService implementation.
func NewInventoryService(repo port.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Create(ctx context.Context, tenantID uuid.UUID, input CreateInventoryInput) (*domain.InventoryItem, error) {
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = domain.DefaultUnit
	}
	item := &domain.InventoryItem{
		TenantID:    tenantID,
		ItemCode:    strings.TrimSpace(input.ItemCode),
		ItemName:    strings.TrimSpace(input.ItemName),
		Category:    input.Category,
		Unit:        unit,
		UnitPrice:   input.UnitPrice,
		StockQty:    input.StockQty,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *inventoryService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.InventoryItem, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *inventoryService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInventoryInput) (*domain.InventoryItem, error) {
	patch := domain.InventoryPatch{
		ItemCode:    input.ItemCode,
		ItemName:    input.ItemName,
		Category:    input.Category,
		Unit:        input.Unit,
		UnitPrice:   input.UnitPrice,
		StockQty:    input.StockQty,
		Description: input.Description,
	}
	if patch == (domain.InventoryPatch{}) {
		return nil, domain.ErrEmptyUpdate
	}
	return s.repo.Update(ctx, tenantID, id, patch)
}

func (s *inventoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}
