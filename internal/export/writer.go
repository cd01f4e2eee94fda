package export

import (
	"io"

	"quotely/internal/domain"
)

// Writer is implemented by the CSV and XLSX register writers.
type Writer interface {
	WriteHeader() error
	WriteSummaries(summaries []domain.DocumentSummary) error
	Close() error
}

// NewWriter returns the register writer for format.
func NewWriter(w io.Writer, format domain.ExportFormat, docType domain.DocumentType) (Writer, error) {
	switch format {
	case domain.ExportFormatCSV:
		return NewCSVWriter(w, docType), nil
	case domain.ExportFormatXLSX:
		xw, err := NewXLSXWriter(w, docType)
		if err != nil {
			return nil, err
		}
		return xw, nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

// ContentType returns the MIME type for format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
