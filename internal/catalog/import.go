// Package catalog reads inventory spreadsheets for bulk import.
//
// The first row is a header naming the columns; order is free and names are
// matched case-insensitively with spaces treated as underscores. Recognized
// columns: item_code, item_name, category, unit, unit_price, stock_qty,
// description. Only item_name is required.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"quotely/internal/domain"
)

// ErrMissingNameColumn is returned when the header has no item_name column.
var ErrMissingNameColumn = errors.New("catalog: header has no item_name column")

// RowError reports a data row that could not be imported. Row is the
// 1-based spreadsheet row number.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ReadXLSX parses the first sheet of an .xlsx workbook.
func ReadXLSX(r io.Reader) ([]domain.InventoryItem, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet: %w", err)
	}
	return parseRows(rows)
}

// ReadCSV parses a comma-separated file. A leading UTF-8 BOM is ignored.
func ReadCSV(r io.Reader) ([]domain.InventoryItem, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]domain.InventoryItem, []RowError, error) {
	if len(rows) == 0 {
		return []domain.InventoryItem{}, nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols["item_name"]; !ok {
		return nil, nil, ErrMissingNameColumn
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := []domain.InventoryItem{}
	var rowErrs []RowError
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, "item_name")
		if name == "" {
			continue
		}

		item := domain.InventoryItem{
			ItemCode:    cell(row, "item_code"),
			ItemName:    name,
			Category:    cell(row, "category"),
			Unit:        cell(row, "unit"),
			Description: cell(row, "description"),
		}
		if item.Unit == "" {
			item.Unit = domain.DefaultUnit
		}

		if raw := cell(row, "unit_price"); raw != "" {
			price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil || price.IsNegative() {
				rowErrs = append(rowErrs, RowError{Row: i + 1, Err: fmt.Errorf("invalid unit_price %q", raw)})
				continue
			}
			item.UnitPrice = price
		}
		if raw := cell(row, "stock_qty"); raw != "" {
			qty, err := strconv.Atoi(raw)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: i + 1, Err: fmt.Errorf("invalid stock_qty %q", raw)})
				continue
			}
			item.StockQty = qty
		}
		items = append(items, item)
	}
	return items, rowErrs, nil
}
