package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/port"
)

type quotationRepo struct {
	store *documentStore
}

// NewQuotationRepo creates a new PostgreSQL-backed QuotationRepository.
func NewQuotationRepo(db *sqlx.DB, cfg config.NumberingConfig) port.QuotationRepository {
	return &quotationRepo{store: newDocumentStore(db, quotationTable, cfg.MaxRetries, "quotationRepo")}
}

const insertQuotationQuery = `INSERT INTO quotations (id, tenant_id, number, document_date,
	customer_name, customer_phone, customer_address,
	subtotal, tax_percent, tax_amount, discount_amount, total_amount,
	notes, status, valid_until, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

const getQuotationQuery = `SELECT q.id, q.tenant_id, q.number, q.document_date,
	q.customer_name, q.customer_phone, q.customer_address,
	q.subtotal, q.tax_percent, q.tax_amount, q.discount_amount, q.total_amount,
	q.notes, q.status, q.valid_until, q.created_at, q.updated_at,
	li.id AS linked_invoice_id, li.number AS linked_invoice_number
	FROM quotations q
	LEFT JOIN LATERAL (
		SELECT i.id, i.number FROM invoices i
		WHERE i.quotation_id = q.id AND i.tenant_id = q.tenant_id
		ORDER BY i.created_at LIMIT 1
	) li ON TRUE
	WHERE q.id = $1 AND q.tenant_id = $2`

func (r *quotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	return r.store.create(ctx, &q.Document, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insertQuotationQuery,
			q.ID, q.TenantID, q.Number, q.DocumentDate,
			q.CustomerName, q.CustomerPhone, q.CustomerAddress,
			q.Subtotal, q.TaxPercent, q.TaxAmount, q.DiscountAmount, q.TotalAmount,
			q.Notes, q.Status, q.ValidUntil, q.CreatedAt, q.UpdatedAt)
		return err
	})
}

func (r *quotationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	var q domain.Quotation
	if err := r.store.db.GetContext(ctx, &q, getQuotationQuery, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, fmt.Errorf("quotationRepo.GetByID: %w", err)
	}

	items, err := r.store.loadItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

func (r *quotationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	return r.store.list(ctx, tenantID, offset, limit)
}

func (r *quotationRepo) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.DocumentPatch) error {
	return r.store.update(ctx, tenantID, id, patch, domain.ErrQuotationNotFound)
}

func (r *quotationRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.store.delete(ctx, tenantID, id, domain.ErrQuotationNotFound)
}
