package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder. Every user is its own tenant: documents and
// inventory are partitioned by the owning user's ID.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Username     string    `db:"username" json:"username"`
	BusinessName string    `db:"business_name" json:"business_name"`
	Phone        string    `db:"phone" json:"phone"`
	Address      string    `db:"address" json:"address"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// InventoryItem is a catalog entry a tenant sells.
type InventoryItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	ItemCode    string          `db:"item_code" json:"item_code"`
	ItemName    string          `db:"item_name" json:"item_name"`
	Category    string          `db:"category" json:"category"`
	Unit        string          `db:"unit" json:"unit"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	StockQty    int             `db:"stock_qty" json:"stock_qty"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// InventoryPatch holds the optional fields of an inventory update.
type InventoryPatch struct {
	ItemCode    *string
	ItemName    *string
	Category    *string
	Unit        *string
	UnitPrice   *decimal.Decimal
	StockQty    *int
	Description *string
}

// LineItem is one priced row of a quotation or invoice. Name, code and price
// are copied at write time; InventoryID is an informational back-reference.
type LineItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	DocumentID  uuid.UUID       `db:"document_id" json:"-"`
	InventoryID *uuid.UUID      `db:"inventory_id" json:"inventory_id"`
	ItemCode    string          `db:"item_code" json:"item_code"`
	ItemName    string          `db:"item_name" json:"item_name"`
	Unit        string          `db:"unit" json:"unit"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
	SortOrder   int             `db:"sort_order" json:"sort_order"`
}

// Document holds the header fields shared by quotations and invoices.
type Document struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Number          string          `db:"number" json:"number"`
	DocumentDate    time.Time       `db:"document_date" json:"document_date"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerAddress string          `db:"customer_address" json:"customer_address"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxPercent      decimal.Decimal `db:"tax_percent" json:"tax_percent"`
	TaxAmount       decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	DiscountAmount  decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	Notes           string          `db:"notes" json:"notes"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	Items           []LineItem      `db:"-" json:"items"`
}

// Quotation is a priced offer to a customer.
type Quotation struct {
	Document
	Status     QuotationStatus `db:"status" json:"status"`
	ValidUntil *time.Time      `db:"valid_until" json:"valid_until"`

	// Set on reads when an invoice references this quotation.
	LinkedInvoiceID     *uuid.UUID `db:"linked_invoice_id" json:"linked_invoice_id"`
	LinkedInvoiceNumber *string    `db:"linked_invoice_number" json:"linked_invoice_number"`
}

// Invoice is a bill to a customer, optionally originating from a quotation.
type Invoice struct {
	Document
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	DueDate       *time.Time    `db:"due_date" json:"due_date"`
	QuotationID   *uuid.UUID    `db:"quotation_id" json:"quotation_id"`

	// Set on reads when QuotationID still resolves.
	QuotationNumber *string `db:"quotation_number" json:"quotation_number"`
}

// DocumentSummary is the list view of a quotation or invoice.
type DocumentSummary struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Number        string          `db:"number" json:"number"`
	DocumentDate  time.Time       `db:"document_date" json:"document_date"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        string          `db:"status" json:"status"`
	ItemCount     int             `db:"item_count" json:"item_count"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// DocumentPatch is a partial header update plus an optional wholesale item
// replacement. Nil pointers leave the stored value untouched. A nil Items
// slice leaves items and totals untouched; a non-nil slice, even empty,
// replaces every item and recomputes totals.
type DocumentPatch struct {
	DocumentDate    *time.Time
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	TaxPercent      *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Notes           *string

	// Status maps to quotations.status or invoices.payment_status.
	Status *string
	// ValidUntil applies to quotations only, DueDate to invoices only.
	ValidUntil *time.Time
	DueDate    *time.Time

	Items []LineItem
}

// HasHeaderChanges reports whether any header field is set.
func (p *DocumentPatch) HasHeaderChanges() bool {
	return p.DocumentDate != nil || p.CustomerName != nil || p.CustomerPhone != nil ||
		p.CustomerAddress != nil || p.TaxPercent != nil || p.DiscountAmount != nil ||
		p.Notes != nil || p.Status != nil || p.ValidUntil != nil || p.DueDate != nil
}

// IsEmpty reports whether the patch would change nothing.
func (p *DocumentPatch) IsEmpty() bool {
	return !p.HasHeaderChanges() && p.Items == nil
}

// DashboardSummary aggregates a tenant's invoice and quotation figures.
type DashboardSummary struct {
	TotalCollected  decimal.Decimal `db:"total_collected" json:"total_collected"`
	TotalPending    decimal.Decimal `db:"total_pending" json:"total_pending"`
	TotalInvoices   int             `db:"total_invoices" json:"total_invoices"`
	PaidInvoices    int             `db:"paid_invoices" json:"paid_invoices"`
	PendingInvoices int             `db:"pending_invoices" json:"pending_invoices"`
	TotalQuotations int             `db:"total_quotations" json:"total_quotations"`
}

// QuotationDraft is an unsaved quotation proposed from free-text input.
type QuotationDraft struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Notes         string      `json:"notes"`
	Items         []DraftItem `json:"items"`
	Model         string      `json:"model"`
	Provider      string      `json:"provider"`
}

// DraftItem is a line proposed by the AI extractor. InventoryID is only set
// when the model matched a catalog entry.
type DraftItem struct {
	InventoryID *uuid.UUID      `json:"inventory_id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DeliveryReceipt describes an archived document that was emailed to a customer.
type DeliveryReceipt struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	SentTo    string    `json:"sent_to"`
	ExpiresAt time.Time `json:"expires_at"`
}
