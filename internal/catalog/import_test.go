package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"quotely/internal/catalog"
	"quotely/internal/domain"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffItem Name,Item Code,Unit Price,Stock Qty,Unit\n" +
		"Dome Camera,CAM-01,\"2,500.50\",12,\n" +
		",,,,\n" +
		"DVR 8ch,DVR-8,abc,1,set\n" +
		"Cable,CBL,1200,x,roll\n" +
		"Installation,,,,visit\n"

	items, rowErrs, err := catalog.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Dome Camera", items[0].ItemName)
	assert.Equal(t, "CAM-01", items[0].ItemCode)
	assert.True(t, items[0].UnitPrice.Equal(mustDec(t, "2500.50")))
	assert.Equal(t, 12, items[0].StockQty)
	assert.Equal(t, domain.DefaultUnit, items[0].Unit)
	assert.Equal(t, "visit", items[1].Unit)
	assert.True(t, items[1].UnitPrice.IsZero())

	require.Len(t, rowErrs, 2)
	assert.Equal(t, 4, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Error(), "unit_price")
	assert.Equal(t, 5, rowErrs[1].Row)
}

func TestReadCSV_MissingNameColumn(t *testing.T) {
	_, _, err := catalog.ReadCSV(strings.NewReader("code,price\nA,1\n"))
	assert.ErrorIs(t, err, catalog.ErrMissingNameColumn)
}

func TestReadCSV_Empty(t *testing.T) {
	items, rowErrs, err := catalog.ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, rowErrs)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"item_name", "category", "unit_price", "description"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Dome Camera", "CCTV", 2500, "2MP"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Bullet Camera", "CCTV", 2750.5, ""}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	items, rowErrs, err := catalog.ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, items, 2)
	assert.Equal(t, "CCTV", items[0].Category)
	assert.Equal(t, "2MP", items[0].Description)
	assert.True(t, items[1].UnitPrice.Equal(mustDec(t, "2750.5")))
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
