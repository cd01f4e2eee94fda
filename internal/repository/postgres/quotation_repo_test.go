package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/port"
	"quotely/internal/repository/postgres"
)

// decimalArg matches a driver value that parses to the given decimal.
type decimalArg string

func (d decimalArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return decimal.RequireFromString(string(d)).Equal(got)
}

func newQuotationRepo(t *testing.T, maxRetries int) (port.QuotationRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "pgx")
	return postgres.NewQuotationRepo(db, config.NumberingConfig{MaxRetries: maxRetries}), mock
}

func sampleQuotation(tenantID uuid.UUID) *domain.Quotation {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &domain.Quotation{
		Document: domain.Document{
			TenantID:     tenantID,
			DocumentDate: created,
			CustomerName: "Acme Traders",
			Subtotal:     decimal.RequireFromString("10000"),
			TaxPercent:   decimal.RequireFromString("18"),
			TaxAmount:    decimal.RequireFromString("1800"),
			TotalAmount:  decimal.RequireFromString("11300"),
			CreatedAt:    created,
			UpdatedAt:    created,
			Items: []domain.LineItem{
				{ItemName: "Cement bag", Unit: "bag", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("2500"), SortOrder: 0},
				{ItemName: "Delivery", Unit: "trip", Quantity: decimal.NewFromInt(0), UnitPrice: decimal.NewFromInt(300), SortOrder: 1},
			},
		},
		Status: domain.QuotationStatusDraft,
	}
}

func expectNumberReservation(mock sqlmock.Sqlmock, pattern string, maxSeq int) {
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(CAST\\(split_part\\(number").
		WithArgs(sqlmock.AnyArg(), pattern).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(maxSeq))
}

func numberTaken() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "quotations_tenant_number_key"}
}

// --- Create ---

func TestQuotationRepo_Create_Success(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	q := sampleQuotation(uuid.New())

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 0)
	mock.ExpectExec("INSERT INTO quotations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quotation_items").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "", "Cement bag", "bag",
			decimalArg("4"), decimalArg("2500"), decimalArg("10000"), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quotation_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, "QT-2026-0001", q.Number)
	assert.NotEqual(t, uuid.Nil, q.ID)
	for _, it := range q.Items {
		assert.Equal(t, q.ID, it.DocumentID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Create_ContinuesSequence(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	q := sampleQuotation(uuid.New())
	q.Items = nil

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 41)
	mock.ExpectExec("INSERT INTO quotations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), q))
	assert.Equal(t, "QT-2026-0042", q.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Create_ItemFailureRollsBack(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	q := sampleQuotation(uuid.New())

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 0)
	mock.ExpectExec("INSERT INTO quotations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quotation_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quotation_items").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), q)

	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, q.ID)
	assert.Empty(t, q.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Create_RetriesOnNumberConflict(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	q := sampleQuotation(uuid.New())
	q.Items = nil

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 4)
	mock.ExpectExec("INSERT INTO quotations").WillReturnError(numberTaken())
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 5)
	mock.ExpectExec("INSERT INTO quotations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), q))
	assert.Equal(t, "QT-2026-0006", q.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Create_RetriesExhausted(t *testing.T) {
	repo, mock := newQuotationRepo(t, 2)
	q := sampleQuotation(uuid.New())
	q.Items = nil

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		expectNumberReservation(mock, "QT-2026-%", 4)
		mock.ExpectExec("INSERT INTO quotations").WillReturnError(numberTaken())
		mock.ExpectRollback()
	}

	err := repo.Create(context.Background(), q)

	assert.ErrorIs(t, err, domain.ErrNumberingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Create_OtherUniqueViolationNotRetried(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	q := sampleQuotation(uuid.New())
	q.Items = nil

	mock.ExpectBegin()
	expectNumberReservation(mock, "QT-2026-%", 0)
	mock.ExpectExec("INSERT INTO quotations").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "quotations_pkey"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), q)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNumberingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- Update ---

func TestQuotationRepo_Update_ReplacesItemsAndRecomputes(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	tenantID, id := uuid.New(), uuid.New()
	name := "Acme Traders Pvt Ltd"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations WHERE id = \\$1 AND tenant_id = \\$2 FOR UPDATE").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}).AddRow("18", "500"))
	mock.ExpectExec("DELETE FROM quotation_items WHERE document_id = \\$1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO quotation_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quotations SET customer_name = \\$1, subtotal = \\$2, tax_amount = \\$3, total_amount = \\$4, updated_at = \\$5 WHERE id = \\$6 AND tenant_id = \\$7").
		WithArgs(name, decimalArg("10000"), decimalArg("1800"), decimalArg("11300"),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), tenantID, id, domain.DocumentPatch{
		CustomerName: &name,
		Items: []domain.LineItem{
			{ItemName: "Cement bag", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(2500)},
		},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Update_PatchedTaxUsedForRecompute(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	tax := decimal.NewFromInt(5)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations").
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}).AddRow("18", "0"))
	mock.ExpectExec("DELETE FROM quotation_items").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO quotation_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quotations SET tax_percent = \\$1, subtotal = \\$2, tax_amount = \\$3, total_amount = \\$4, updated_at = \\$5").
		WithArgs(decimalArg("5"), decimalArg("200"), decimalArg("10"), decimalArg("210"),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentPatch{
		TaxPercent: &tax,
		Items:      []domain.LineItem{{ItemName: "Paint", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Update_SubScaleItemsStoredAtColumnScale(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	price := decimal.RequireFromString("33.33333")
	tiny := decimal.RequireFromString("0.00004")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations").
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}).AddRow("0", "0"))
	mock.ExpectExec("DELETE FROM quotation_items").WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO quotation_items").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "", "Tile", "",
				decimalArg("1.5"), decimalArg("33.3333"), decimalArg("50"), i).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("INSERT INTO quotation_items").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "", "Grout", "",
			decimalArg("0"), decimalArg("1"), decimalArg("0"), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quotations SET subtotal = \\$1, tax_amount = \\$2, total_amount = \\$3").
		WithArgs(decimalArg("100"), decimalArg("0"), decimalArg("100"),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	items := []domain.LineItem{
		{ItemName: "Tile", Quantity: decimal.RequireFromString("1.5"), UnitPrice: price, SortOrder: 0},
		{ItemName: "Tile", Quantity: decimal.RequireFromString("1.5"), UnitPrice: price, SortOrder: 1},
		{ItemName: "Grout", Quantity: tiny, UnitPrice: decimal.NewFromInt(1), SortOrder: 2},
	}
	err := repo.Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentPatch{Items: items})

	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, decimal.NewFromInt(100).Equal(sum), "sum of stored line totals = %s", sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Update_EmptyItemListClearsItems(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations").
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}).AddRow("18", "0"))
	mock.ExpectExec("DELETE FROM quotation_items").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE quotations SET subtotal = \\$1, tax_amount = \\$2, total_amount = \\$3, updated_at = \\$4").
		WithArgs(decimalArg("0"), decimalArg("0"), decimalArg("0"),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentPatch{Items: []domain.LineItem{}})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Update_HeaderOnlyKeepsItems(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	notes := "valid for 15 days"
	status := string(domain.QuotationStatusSent)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations").
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}).AddRow("18", "0"))
	mock.ExpectExec("UPDATE quotations SET notes = \\$1, status = \\$2, updated_at = \\$3 WHERE id = \\$4 AND tenant_id = \\$5").
		WithArgs(notes, status, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentPatch{Notes: &notes, Status: &status})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_Update_NotFound(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	notes := "x"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tax_percent, discount_amount FROM quotations").
		WillReturnRows(sqlmock.NewRows([]string{"tax_percent", "discount_amount"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentPatch{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- Delete ---

func TestQuotationRepo_Delete(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	tenantID, id := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM quotations WHERE id = \\$1 AND tenant_id = \\$2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM quotations WHERE id = \\$1 AND tenant_id = \\$2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), tenantID, id))
	assert.ErrorIs(t, repo.Delete(context.Background(), tenantID, id), domain.ErrQuotationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- Read ---

var quotationColumns = []string{
	"id", "tenant_id", "number", "document_date", "customer_name", "customer_phone", "customer_address",
	"subtotal", "tax_percent", "tax_amount", "discount_amount", "total_amount",
	"notes", "status", "valid_until", "created_at", "updated_at",
	"linked_invoice_id", "linked_invoice_number",
}

var itemColumns = []string{
	"id", "document_id", "inventory_id", "item_code", "item_name", "unit",
	"quantity", "unit_price", "total_price", "sort_order",
}

func TestQuotationRepo_GetByID_WithLinkedInvoice(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)
	tenantID, id, invoiceID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM quotations q\\s+LEFT JOIN LATERAL").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(quotationColumns).AddRow(
			id.String(), tenantID.String(), "QT-2026-0001", now, "Acme Traders", "", "",
			"10000", "18", "1800", "500", "11300",
			"", "accepted", nil, now, now,
			invoiceID.String(), "INV-2026-0003"))
	mock.ExpectQuery("FROM quotation_items WHERE document_id = \\$1 ORDER BY sort_order").
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(uuid.New().String(), id.String(), nil, "CB-1", "Cement bag", "bag", "4", "2500", "10000", 0))

	q, err := repo.GetByID(context.Background(), tenantID, id)

	require.NoError(t, err)
	assert.Equal(t, "QT-2026-0001", q.Number)
	assert.True(t, decimal.RequireFromString("11300").Equal(q.TotalAmount))
	require.NotNil(t, q.LinkedInvoiceID)
	assert.Equal(t, invoiceID, *q.LinkedInvoiceID)
	assert.Equal(t, "INV-2026-0003", *q.LinkedInvoiceNumber)
	require.Len(t, q.Items, 1)
	assert.Nil(t, q.Items[0].InventoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)

	mock.ExpectQuery("FROM quotations q").WillReturnRows(sqlmock.NewRows(quotationColumns))

	_, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotationRepo_ListByTenant_Empty(t *testing.T) {
	repo, mock := newQuotationRepo(t, 3)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM quotations WHERE tenant_id = \\$1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ORDER BY d.created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "document_date", "customer_name",
			"customer_phone", "total_amount", "status", "item_count", "created_at"}))

	list, total, err := repo.ListByTenant(context.Background(), uuid.New(), 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
