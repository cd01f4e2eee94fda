package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotely/internal/domain"
	"quotely/internal/totals"
)

// LineItemInput is one requested line. Name, code and price are taken as
// given; InventoryID is stored only as a reference.
type LineItemInput struct {
	InventoryID *uuid.UUID      `json:"inventory_id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SortOrder   *int            `json:"sort_order"`
}

// DocumentFields are the header fields and items common to quotation and
// invoice creation.
type DocumentFields struct {
	DocumentDate    *Date           `json:"document_date"`
	CustomerName    string          `json:"customer_name" binding:"required"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Notes           string          `json:"notes"`
	Items           []LineItemInput `json:"items" binding:"dive"`
}

// DocumentPatchFields are the optional header fields and items common to
// quotation and invoice updates. Omitting items keeps the stored ones; an
// explicit list, even empty, replaces them.
type DocumentPatchFields struct {
	DocumentDate    *Date            `json:"document_date"`
	CustomerName    *string          `json:"customer_name"`
	CustomerPhone   *string          `json:"customer_phone"`
	CustomerAddress *string          `json:"customer_address"`
	TaxPercent      *decimal.Decimal `json:"tax_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	Notes           *string          `json:"notes"`
	Items           []LineItemInput  `json:"items" binding:"omitempty,dive"`
}

// Option configures the document services.
type Option func(*docOptions)

type docOptions struct {
	now func() time.Time
}

// WithClock overrides the clock used for creation timestamps, default
// document dates and the numbering year.
func WithClock(now func() time.Time) Option {
	return func(o *docOptions) { o.now = now }
}

func applyOptions(opts []Option) docOptions {
	o := docOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// buildLineItems applies defaults and computes each line's total. A nil
// input yields nil so the caller can tell "omitted" from "empty".
func buildLineItems(inputs []LineItemInput) []domain.LineItem {
	if inputs == nil {
		return nil
	}
	items := make([]domain.LineItem, len(inputs))
	for i, in := range inputs {
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			unit = domain.DefaultUnit
		}
		sortOrder := i
		if in.SortOrder != nil {
			sortOrder = *in.SortOrder
		}
		items[i] = domain.LineItem{
			InventoryID: in.InventoryID,
			ItemCode:    strings.TrimSpace(in.ItemCode),
			ItemName:    strings.TrimSpace(in.ItemName),
			Unit:        unit,
			Quantity:    totals.Round(in.Quantity),
			UnitPrice:   totals.Round(in.UnitPrice),
			TotalPrice:  totals.LineTotal(in.Quantity, in.UnitPrice),
			SortOrder:   sortOrder,
		}
	}
	return items
}

// buildDocument assembles a new header with computed totals.
func buildDocument(tenantID uuid.UUID, now time.Time, f *DocumentFields) (domain.Document, error) {
	name := strings.TrimSpace(f.CustomerName)
	if name == "" {
		return domain.Document{}, domain.ErrCustomerNameRequired
	}

	items := buildLineItems(f.Items)
	if items == nil {
		items = []domain.LineItem{}
	}
	res := totals.Compute(linesOf(items), f.TaxPercent, f.DiscountAmount)

	docDate := truncateToDate(now)
	if f.DocumentDate != nil {
		docDate = f.DocumentDate.Time
	}

	return domain.Document{
		TenantID:        tenantID,
		DocumentDate:    docDate,
		CustomerName:    name,
		CustomerPhone:   strings.TrimSpace(f.CustomerPhone),
		CustomerAddress: strings.TrimSpace(f.CustomerAddress),
		Subtotal:        res.Subtotal,
		TaxPercent:      totals.Round(f.TaxPercent),
		TaxAmount:       res.TaxAmount,
		DiscountAmount:  totals.Round(f.DiscountAmount),
		TotalAmount:     res.TotalAmount,
		Notes:           f.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}, nil
}

// buildPatch translates the common update fields into a storage patch.
func buildPatch(f *DocumentPatchFields) (domain.DocumentPatch, error) {
	if f.CustomerName != nil && strings.TrimSpace(*f.CustomerName) == "" {
		return domain.DocumentPatch{}, domain.ErrCustomerNameRequired
	}
	return domain.DocumentPatch{
		DocumentDate:    dateOrNil(f.DocumentDate),
		CustomerName:    f.CustomerName,
		CustomerPhone:   f.CustomerPhone,
		CustomerAddress: f.CustomerAddress,
		TaxPercent:      f.TaxPercent,
		DiscountAmount:  f.DiscountAmount,
		Notes:           f.Notes,
		Items:           buildLineItems(f.Items),
	}, nil
}

func linesOf(items []domain.LineItem) []totals.Line {
	lines := make([]totals.Line, len(items))
	for i, it := range items {
		lines[i] = totals.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return lines
}
