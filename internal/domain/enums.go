package domain

// UserRole distinguishes the administrator from ordinary accounts.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DocumentType identifies the two header+items aggregates.
type DocumentType string

const (
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeInvoice   DocumentType = "invoice"
)

// QuotationStatus is the lifecycle state of a quotation.
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// ValidQuotationStatuses is the accepted quotation status vocabulary.
var ValidQuotationStatuses = map[QuotationStatus]bool{
	QuotationStatusDraft:    true,
	QuotationStatusSent:     true,
	QuotationStatusAccepted: true,
	QuotationStatusRejected: true,
}

// PaymentStatus is the collection state of an invoice.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ValidPaymentStatuses is the accepted invoice payment status vocabulary.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusPending: true,
	PaymentStatusPartial: true,
	PaymentStatusPaid:    true,
}

// DefaultUnit is applied to line items and inventory entries without a unit.
const DefaultUnit = "piece"

// ExportFormat selects the register export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
