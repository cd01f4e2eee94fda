package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"quotely/internal/domain"
	"quotely/internal/numbering"
	"quotely/internal/totals"
)

// docTable describes the storage layout of one document type. Quotations and
// invoices share the header+items shape and differ only in table names, the
// status column and the type-specific date column.
type docTable struct {
	docType          domain.DocumentType
	name             string
	itemsName        string
	statusColumn     string
	dateColumn       string
	numberConstraint string
}

var (
	quotationTable = docTable{
		docType:          domain.DocumentTypeQuotation,
		name:             "quotations",
		itemsName:        "quotation_items",
		statusColumn:     "status",
		dateColumn:       "valid_until",
		numberConstraint: "quotations_tenant_number_key",
	}
	invoiceTable = docTable{
		docType:          domain.DocumentTypeInvoice,
		name:             "invoices",
		itemsName:        "invoice_items",
		statusColumn:     "payment_status",
		dateColumn:       "due_date",
		numberConstraint: "invoices_tenant_number_key",
	}
)

// documentStore implements the transactional aggregate writes shared by the
// quotation and invoice repositories.
type documentStore struct {
	db          *sqlx.DB
	table       docTable
	maxAttempts int
	repoName    string
}

func newDocumentStore(db *sqlx.DB, table docTable, maxAttempts int, repoName string) *documentStore {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &documentStore{db: db, table: table, maxAttempts: maxAttempts, repoName: repoName}
}

// create reserves a number and inserts header and items in one transaction.
// A unique violation on the number index discards the attempt and retries
// with a fresh reservation.
func (s *documentStore) create(ctx context.Context, doc *domain.Document, insertHeader func(ctx context.Context, tx *sqlx.Tx) error) error {
	year := doc.CreatedAt.UTC().Year()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		doc.ID = uuid.New()
		err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
			number, err := s.nextNumber(ctx, tx, doc.TenantID, year)
			if err != nil {
				return err
			}
			doc.Number = number

			if err := insertHeader(ctx, tx); err != nil {
				return fmt.Errorf("%s.Create header: %w", s.repoName, err)
			}
			return s.insertItems(ctx, tx, doc.ID, doc.Items)
		})
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err, s.table.numberConstraint) {
			doc.ID, doc.Number = uuid.Nil, ""
			return err
		}
		lastErr = err
		log.Printf("%s.Create: number %s already taken (attempt %d/%d)", s.repoName, doc.Number, attempt, s.maxAttempts)
	}

	doc.ID, doc.Number = uuid.Nil, ""
	return fmt.Errorf("%s.Create: %w: %v", s.repoName, domain.ErrNumberingConflict, lastErr)
}

// nextNumber serializes reservations for (tenant, type, year) with a
// transaction-scoped advisory lock and returns max suffix + 1.
func (s *documentStore) nextNumber(ctx context.Context, tx *sqlx.Tx, tenantID uuid.UUID, year int) (string, error) {
	key := numbering.LockKey(tenantID, s.table.docType, year)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return "", fmt.Errorf("%s.nextNumber lock: %w", s.repoName, err)
	}

	prefix := numbering.Prefix(s.table.docType)
	query := fmt.Sprintf(`SELECT COALESCE(MAX(CAST(split_part(number, '-', 3) AS INTEGER)), 0)
		FROM %s WHERE tenant_id = $1 AND number LIKE $2`, s.table.name)

	var maxSeq int
	if err := tx.GetContext(ctx, &maxSeq, query, tenantID, numbering.Pattern(prefix, year)); err != nil {
		return "", fmt.Errorf("%s.nextNumber: %w", s.repoName, err)
	}
	return numbering.Next(prefix, year, maxSeq), nil
}

// insertItems writes the given items in order. Quantity and price are rounded
// to the column scale and the total price is computed from the rounded values,
// so the stored total always equals the stored quantity × unit price.
func (s *documentStore) insertItems(ctx context.Context, tx *sqlx.Tx, docID uuid.UUID, items []domain.LineItem) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, document_id, inventory_id, item_code, item_name, unit,
		quantity, unit_price, total_price, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, s.table.itemsName)

	for i := range items {
		it := &items[i]
		it.ID = uuid.New()
		it.DocumentID = docID
		it.Quantity = totals.Round(it.Quantity)
		it.UnitPrice = totals.Round(it.UnitPrice)
		it.TotalPrice = totals.LineTotal(it.Quantity, it.UnitPrice)
		if _, err := tx.ExecContext(ctx, query,
			it.ID, it.DocumentID, it.InventoryID, it.ItemCode, it.ItemName, it.Unit,
			it.Quantity, it.UnitPrice, it.TotalPrice, it.SortOrder); err != nil {
			return fmt.Errorf("%s.insertItems item %d: %w", s.repoName, i, err)
		}
	}
	return nil
}

// update locks the tenant's row, optionally replaces every item, and applies
// the header patch. Totals are recomputed only when items are replaced, using
// the patched tax and discount or the stored ones.
func (s *documentStore) update(ctx context.Context, tenantID, id uuid.UUID, patch domain.DocumentPatch, notFound error) error {
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var stored struct {
			TaxPercent     decimal.Decimal `db:"tax_percent"`
			DiscountAmount decimal.Decimal `db:"discount_amount"`
		}
		lockQuery := fmt.Sprintf(
			"SELECT tax_percent, discount_amount FROM %s WHERE id = $1 AND tenant_id = $2 FOR UPDATE", s.table.name)
		if err := tx.GetContext(ctx, &stored, lockQuery, id, tenantID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound
			}
			return fmt.Errorf("%s.Update lock: %w", s.repoName, err)
		}

		set := s.patchAssignments(patch)

		if patch.Items != nil {
			deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", s.table.itemsName)
			if _, err := tx.ExecContext(ctx, deleteQuery, id); err != nil {
				return fmt.Errorf("%s.Update delete items: %w", s.repoName, err)
			}
			if err := s.insertItems(ctx, tx, id, patch.Items); err != nil {
				return err
			}

			taxPercent, discount := stored.TaxPercent, stored.DiscountAmount
			if patch.TaxPercent != nil {
				taxPercent = *patch.TaxPercent
			}
			if patch.DiscountAmount != nil {
				discount = *patch.DiscountAmount
			}
			res := totals.Compute(linesOf(patch.Items), taxPercent, discount)
			set = append(set,
				assignment{"subtotal", res.Subtotal},
				assignment{"tax_amount", res.TaxAmount},
				assignment{"total_amount", res.TotalAmount},
			)
		}

		set = append(set, assignment{"updated_at", time.Now().UTC()})
		query, args := buildUpdate(s.table.name, set, id, tenantID)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%s.Update: %w", s.repoName, err)
		}
		return nil
	})
}

// patchAssignments translates the set fields of a patch into column
// assignments in a fixed order.
func (s *documentStore) patchAssignments(p domain.DocumentPatch) []assignment {
	var set []assignment
	if p.DocumentDate != nil {
		set = append(set, assignment{"document_date", *p.DocumentDate})
	}
	if p.CustomerName != nil {
		set = append(set, assignment{"customer_name", *p.CustomerName})
	}
	if p.CustomerPhone != nil {
		set = append(set, assignment{"customer_phone", *p.CustomerPhone})
	}
	if p.CustomerAddress != nil {
		set = append(set, assignment{"customer_address", *p.CustomerAddress})
	}
	if p.TaxPercent != nil {
		set = append(set, assignment{"tax_percent", totals.Round(*p.TaxPercent)})
	}
	if p.DiscountAmount != nil {
		set = append(set, assignment{"discount_amount", totals.Round(*p.DiscountAmount)})
	}
	if p.Notes != nil {
		set = append(set, assignment{"notes", *p.Notes})
	}
	if p.Status != nil {
		set = append(set, assignment{s.table.statusColumn, *p.Status})
	}
	switch s.table.docType {
	case domain.DocumentTypeQuotation:
		if p.ValidUntil != nil {
			set = append(set, assignment{s.table.dateColumn, *p.ValidUntil})
		}
	case domain.DocumentTypeInvoice:
		if p.DueDate != nil {
			set = append(set, assignment{s.table.dateColumn, *p.DueDate})
		}
	}
	return set
}

func (s *documentStore) delete(ctx context.Context, tenantID, id uuid.UUID, notFound error) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND tenant_id = $2", s.table.name)
	result, err := s.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("%s.Delete: %w", s.repoName, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound
	}
	return nil
}

// loadItems returns a document's items in display order.
func (s *documentStore) loadItems(ctx context.Context, docID uuid.UUID) ([]domain.LineItem, error) {
	query := fmt.Sprintf(`SELECT id, document_id, inventory_id, item_code, item_name, unit,
		quantity, unit_price, total_price, sort_order
		FROM %s WHERE document_id = $1 ORDER BY sort_order, id`, s.table.itemsName)

	items := []domain.LineItem{}
	if err := s.db.SelectContext(ctx, &items, query, docID); err != nil {
		return nil, fmt.Errorf("%s.loadItems: %w", s.repoName, err)
	}
	return items, nil
}

// list returns summaries with an item count, most recent first.
func (s *documentStore) list(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.DocumentSummary, int, error) {
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE tenant_id = $1", s.table.name)
	if err := s.db.GetContext(ctx, &total, countQuery, tenantID); err != nil {
		return nil, 0, fmt.Errorf("%s.ListByTenant count: %w", s.repoName, err)
	}

	query := fmt.Sprintf(`SELECT d.id, d.number, d.document_date, d.customer_name, d.customer_phone,
		d.total_amount, d.%s AS status,
		(SELECT COUNT(*) FROM %s it WHERE it.document_id = d.id) AS item_count,
		d.created_at
		FROM %s d WHERE d.tenant_id = $1
		ORDER BY d.created_at DESC LIMIT $2 OFFSET $3`,
		s.table.statusColumn, s.table.itemsName, s.table.name)

	summaries := []domain.DocumentSummary{}
	if err := s.db.SelectContext(ctx, &summaries, query, tenantID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("%s.ListByTenant: %w", s.repoName, err)
	}
	return summaries, total, nil
}

func linesOf(items []domain.LineItem) []totals.Line {
	lines := make([]totals.Line, len(items))
	for i, it := range items {
		lines[i] = totals.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return lines
}
