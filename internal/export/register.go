// Package export writes a tenant's quotation or invoice register as CSV or
// XLSX.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"quotely/internal/domain"
)

// BOM is the UTF-8 byte order mark; Excel on Windows needs it to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const dateLayout = "2006-01-02"

// Columns returns the register header row for docType.
func Columns(docType domain.DocumentType) []string {
	status := "Status"
	if docType == domain.DocumentTypeInvoice {
		status = "Payment Status"
	}
	return []string{
		"Number",
		"Date",
		"Customer",
		"Phone",
		"Items",
		"Total",
		status,
		"Created At",
	}
}

// totalColumn is the zero-based index of the numeric total column.
const totalColumn = 5

func summaryToRow(s *domain.DocumentSummary) []string {
	return []string{
		s.Number,
		s.DocumentDate.Format(dateLayout),
		s.CustomerName,
		s.CustomerPhone,
		strconv.Itoa(s.ItemCount),
		s.TotalAmount.StringFixed(2),
		s.Status,
		s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename replaces anything but letters, digits, '-' and '_' with
// '_', collapses runs of '_' and caps the length at 100.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns "<base>_<YYYY-MM-DD>.<ext>" for Content-Disposition.
func BuildFilename(base string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), now.Format(dateLayout), format)
}
