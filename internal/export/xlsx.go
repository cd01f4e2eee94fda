package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"quotely/internal/domain"
)

// XLSXWriter writes register rows into a single-sheet workbook. Rows are
// buffered in memory until Close.
type XLSXWriter struct {
	out     io.Writer
	file    *excelize.File
	sheet   string
	docType domain.DocumentType
	row     int
	money   int
}

// NewXLSXWriter creates an XLSXWriter for docType writing to w.
func NewXLSXWriter(w io.Writer, docType domain.DocumentType) (*XLSXWriter, error) {
	f := excelize.NewFile()
	sheet := "Quotations"
	if docType == domain.DocumentTypeInvoice {
		sheet = "Invoices"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating money style: %w", err)
	}
	return &XLSXWriter{out: w, file: f, sheet: sheet, docType: docType, row: 1, money: money}, nil
}

// WriteHeader writes a bold, shaded header row.
func (w *XLSXWriter) WriteHeader() error {
	cols := Columns(w.docType)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := w.file.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D0D0D0"}},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", last, style); err != nil {
		return err
	}
	if err := w.file.SetColWidth(w.sheet, "A", "A", 16); err != nil {
		return err
	}
	if err := w.file.SetColWidth(w.sheet, "C", "C", 28); err != nil {
		return err
	}
	w.row = 2
	return nil
}

// WriteSummaries appends one row per summary. The total is stored as a
// number so spreadsheet formulas work on it.
func (w *XLSXWriter) WriteSummaries(summaries []domain.DocumentSummary) error {
	for i := range summaries {
		s := &summaries[i]
		values := summaryToRow(s)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		row[4] = s.ItemCount
		row[totalColumn] = s.TotalAmount.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(w.sheet, cell, &row); err != nil {
			return err
		}
		totalCell, err := excelize.CoordinatesToCellName(totalColumn+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStyle(w.sheet, totalCell, totalCell, w.money); err != nil {
			return err
		}
		w.row++
	}
	return nil
}

// Close writes the workbook to the underlying writer and releases it.
func (w *XLSXWriter) Close() error {
	defer func() { _ = w.file.Close() }()
	if err := w.file.Write(w.out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
