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

type invoiceRepo struct {
	store *documentStore
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB, cfg config.NumberingConfig) port.InvoiceRepository {
	return &invoiceRepo{store: newDocumentStore(db, invoiceTable, cfg.MaxRetries, "invoiceRepo")}
}

const insertInvoiceQuery = `INSERT INTO invoices (id, tenant_id, number, document_date,
	customer_name, customer_phone, customer_address,
	subtotal, tax_percent, tax_amount, discount_amount, total_amount,
	notes, payment_status, due_date, quotation_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

// The quotation reference is resolved within the tenant; a quotation deleted
// after conversion leaves quotation_id NULL through ON DELETE SET NULL.
const getInvoiceQuery = `SELECT i.id, i.tenant_id, i.number, i.document_date,
	i.customer_name, i.customer_phone, i.customer_address,
	i.subtotal, i.tax_percent, i.tax_amount, i.discount_amount, i.total_amount,
	i.notes, i.payment_status, i.due_date, i.quotation_id, i.created_at, i.updated_at,
	q.number AS quotation_number
	FROM invoices i
	LEFT JOIN quotations q ON q.id = i.quotation_id AND q.tenant_id = i.tenant_id
	WHERE i.id = $1 AND i.tenant_id = $2`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.store.create(ctx, &inv.Document, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insertInvoiceQuery,
			inv.ID, inv.TenantID, inv.Number, inv.DocumentDate,
			inv.CustomerName, inv.CustomerPhone, inv.CustomerAddress,
			inv.Subtotal, inv.TaxPercent, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount,
			inv.Notes, inv.PaymentStatus, inv.DueDate, inv.QuotationID, inv.CreatedAt, inv.UpdatedAt)
		return err
	})
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.store.db.GetContext(ctx, &inv, getInvoiceQuery, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	items, err := r.store.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *invoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	return r.store.list(ctx, tenantID, offset, limit)
}

func (r *invoiceRepo) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.DocumentPatch) error {
	return r.store.update(ctx, tenantID, id, patch, domain.ErrInvoiceNotFound)
}

func (r *invoiceRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.store.delete(ctx, tenantID, id, domain.ErrInvoiceNotFound)
}
