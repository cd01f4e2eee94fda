// Package numbering formats human-readable document numbers of
// the form <PREFIX>-<YYYY>-<NNNN>. Sequences are scoped to a tenant, a
// document type and a calendar year.
package numbering

import (
	"fmt"

	"github.com/google/uuid"

	"quotely/internal/domain"
)

const (
	PrefixQuotation = "QT"
	PrefixInvoice   = "INV"

	// SuffixWidth is the minimum zero-padded width of the sequence suffix.
	SuffixWidth = 4
)

// Prefix returns the number prefix for a document type.
func Prefix(docType domain.DocumentType) string {
	if docType == domain.DocumentTypeInvoice {
		return PrefixInvoice
	}
	return PrefixQuotation
}

// Format renders a document number. Sequences above 9999 widen rather than wrap.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, SuffixWidth, seq)
}

// Pattern returns the SQL LIKE pattern matching every number of a prefix and year.
func Pattern(prefix string, year int) string {
	return fmt.Sprintf("%s-%04d-%%", prefix, year)
}

// Next returns the number following the highest existing sequence.
func Next(prefix string, year, maxSeq int) string {
	return Format(prefix, year, maxSeq+1)
}

// LockKey identifies the (tenant, type, year) scope for transaction-level
// advisory locking.
func LockKey(tenantID uuid.UUID, docType domain.DocumentType, year int) string {
	return fmt.Sprintf("%s:%s:%d", tenantID, docType, year)
}
