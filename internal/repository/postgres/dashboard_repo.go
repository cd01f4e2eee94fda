package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quotely/internal/domain"
	"quotely/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

const invoiceSummaryQuery = `SELECT
	COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount ELSE 0 END), 0) AS total_collected,
	COALESCE(SUM(CASE WHEN payment_status <> 'paid' THEN total_amount ELSE 0 END), 0) AS total_pending,
	COUNT(*) AS total_invoices,
	COUNT(CASE WHEN payment_status = 'paid' THEN 1 END) AS paid_invoices,
	COUNT(CASE WHEN payment_status <> 'paid' THEN 1 END) AS pending_invoices
FROM invoices WHERE tenant_id = $1`

func (r *dashboardRepo) GetSummary(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := r.db.GetContext(ctx, &summary, invoiceSummaryQuery, tenantID); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetSummary invoices: %w", err)
	}

	var quotations int
	if err := r.db.GetContext(ctx, &quotations,
		"SELECT COUNT(*) FROM quotations WHERE tenant_id = $1", tenantID); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetSummary quotations: %w", err)
	}
	summary.TotalQuotations = quotations

	return &summary, nil
}
