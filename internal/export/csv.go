package export

import (
	"encoding/csv"
	"io"

	"quotely/internal/domain"
)

// CSVWriter writes register rows as CSV.
type CSVWriter struct {
	out     io.Writer
	csv     *csv.Writer
	docType domain.DocumentType
}

// NewCSVWriter creates a CSVWriter for docType writing to w.
func NewCSVWriter(w io.Writer, docType domain.DocumentType) *CSVWriter {
	return &CSVWriter{out: w, csv: csv.NewWriter(w), docType: docType}
}

// WriteHeader writes the BOM and the header row.
func (w *CSVWriter) WriteHeader() error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	return w.csv.Write(Columns(w.docType))
}

// WriteSummaries writes one row per summary.
func (w *CSVWriter) WriteSummaries(summaries []domain.DocumentSummary) error {
	for i := range summaries {
		if err := w.csv.Write(summaryToRow(&summaries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows and reports any write error.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	return w.csv.Error()
}
