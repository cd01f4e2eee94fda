package port

import (
	"context"

	"github.com/google/uuid"

	"quotely/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// InventoryRepository defines the contract for catalog persistence.
// All query methods include tenantID for tenant isolation.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InventoryItem, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.InventoryItem, int, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]domain.InventoryItem, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.InventoryPatch) (*domain.InventoryItem, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// DashboardRepository provides aggregate figures for a tenant.
type DashboardRepository interface {
	GetSummary(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardSummary, error)
}
