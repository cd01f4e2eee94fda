package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quotely/internal/domain"
	"quotely/internal/port"
)

type inventoryRepo struct {
	db *sqlx.DB
}

// NewInventoryRepo creates a new PostgreSQL-backed InventoryRepository.
func NewInventoryRepo(db *sqlx.DB) port.InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, tenant_id, item_code, item_name, category, unit, unit_price,
	stock_qty, description, created_at, updated_at`

func (r *inventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.TenantID, item.ItemCode, item.ItemName, item.Category, item.Unit,
		item.UnitPrice, item.StockQty, item.Description, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inventoryRepo.Create: %w", err)
	}
	return nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT "+inventoryColumns+" FROM inventory_items WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("inventoryRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.InventoryItem, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM inventory_items WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.ListByTenant count: %w", err)
	}

	items := []domain.InventoryItem{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT "+inventoryColumns+` FROM inventory_items WHERE tenant_id = $1
		ORDER BY item_name LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.ListByTenant: %w", err)
	}
	return items, total, nil
}

func (r *inventoryRepo) ListAll(ctx context.Context, tenantID uuid.UUID) ([]domain.InventoryItem, error) {
	items := []domain.InventoryItem{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT "+inventoryColumns+" FROM inventory_items WHERE tenant_id = $1 ORDER BY item_name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("inventoryRepo.ListAll: %w", err)
	}
	return items, nil
}

func (r *inventoryRepo) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.InventoryPatch) (*domain.InventoryItem, error) {
	var set []assignment
	if patch.ItemCode != nil {
		set = append(set, assignment{"item_code", *patch.ItemCode})
	}
	if patch.ItemName != nil {
		set = append(set, assignment{"item_name", *patch.ItemName})
	}
	if patch.Category != nil {
		set = append(set, assignment{"category", *patch.Category})
	}
	if patch.Unit != nil {
		set = append(set, assignment{"unit", *patch.Unit})
	}
	if patch.UnitPrice != nil {
		set = append(set, assignment{"unit_price", *patch.UnitPrice})
	}
	if patch.StockQty != nil {
		set = append(set, assignment{"stock_qty", *patch.StockQty})
	}
	if patch.Description != nil {
		set = append(set, assignment{"description", *patch.Description})
	}
	set = append(set, assignment{"updated_at", time.Now().UTC()})

	query, args := buildUpdate("inventory_items", set, id, tenantID)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventoryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrInventoryNotFound
	}
	return r.GetByID(ctx, tenantID, id)
}

func (r *inventoryRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM inventory_items WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("inventoryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}
