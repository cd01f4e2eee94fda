// Package pdf renders quotations and invoices as printable A4 documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Kind selects the document layout.
type Kind string

const (
	KindEstimate Kind = "ESTIMATE"
	KindInvoice  Kind = "INVOICE"
)

// CompanyData is the letterhead printed in the page header and footer.
type CompanyData struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// ClientData is the customer block.
type ClientData struct {
	Name    string
	Phone   string
	Address string
}

// Item is one table row.
type Item struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// DocumentData carries everything printed on a document. Totals are printed
// as given; they are not recomputed from Items.
type DocumentData struct {
	Kind          Kind
	Number        string
	Date          time.Time
	ValidUntil    *time.Time
	DueDate       *time.Time
	PaymentStatus string
	Company       CompanyData
	Client        ClientData
	Items         []Item
	Subtotal      decimal.Decimal
	TaxPercent    decimal.Decimal
	TaxAmount     decimal.Decimal
	Discount      decimal.Decimal
	GrandTotal    decimal.Decimal
	Notes         string

	// InfoPage prepends a page listing Highlights.
	InfoPage   bool
	Highlights []string
}

const (
	dateLayout   = "02/01/2006"
	marginX      = 12.0
	headerHeight = 33.0
	rowHeight    = 8.0

	estimateMinRows = 10
	invoiceMinRows  = 8
)

// MinTableRows is the number of rows the item table is padded to.
func MinTableRows(kind Kind) int {
	if kind == KindInvoice {
		return invoiceMinRows
	}
	return estimateMinRows
}

// column widths in mm: Sl, DESCRIPTION, RATE, QTY, AMOUNT
var colWidths = [5]float64{13, 89, 30, 20, 34}

// Render lays out data and returns the encoded PDF.
func Render(data *DocumentData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(marginX, headerHeight+8, marginX)
	doc.SetAutoPageBreak(true, 28)
	doc.SetTitle(fmt.Sprintf("%s %s", data.Kind, data.Number), true)
	doc.SetHeaderFunc(func() { drawHeader(doc, tr, data.Company) })
	doc.SetFooterFunc(func() { drawFooter(doc, tr, data.Company) })

	if data.InfoPage && len(data.Highlights) > 0 {
		doc.AddPage()
		drawInfoPage(doc, tr, data.Company.Name, data.Highlights)
	}

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(0, 14, string(data.Kind), "", 1, "C", false, 0, "")
	doc.Ln(4)

	drawReference(doc, tr, data)
	drawClient(doc, tr, data)
	drawItems(doc, tr, data)
	drawTotals(doc, data)

	if notes := strings.TrimSpace(data.Notes); notes != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, "NOTES", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s pdf: %w", strings.ToLower(string(data.Kind)), err)
	}
	return buf.Bytes(), nil
}

func drawHeader(doc *fpdf.Fpdf, tr func(string) string, c CompanyData) {
	pageW, _ := doc.GetPageSize()
	doc.SetFillColor(0, 0, 0)
	doc.Rect(0, 0, pageW, headerHeight, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 20)
	doc.SetXY(marginX, 9)
	doc.CellFormat(pageW/2, 10, tr(strings.ToUpper(c.Name)), "", 0, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	y := 8.0
	for _, line := range nonEmpty(strings.Split(c.Address, "\n")...) {
		doc.SetXY(pageW/2, y)
		doc.CellFormat(pageW/2-marginX, 5, tr(line), "", 0, "R", false, 0, "")
		y += 5
	}
	if c.Phone != "" {
		doc.SetXY(pageW/2, y)
		doc.CellFormat(pageW/2-marginX, 5, tr("PH: "+c.Phone), "", 0, "R", false, 0, "")
	}

	doc.SetTextColor(0, 0, 0)
	doc.SetXY(marginX, headerHeight+8)
}

func drawFooter(doc *fpdf.Fpdf, tr func(string) string, c CompanyData) {
	doc.SetY(-22)
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(0, 5, tr(c.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 8)
	if c.Email != "" {
		doc.SetTextColor(0, 0, 200)
		doc.CellFormat(0, 4, tr(c.Email), "", 1, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	if c.Phone != "" {
		doc.CellFormat(0, 4, tr(c.Phone), "", 1, "L", false, 0, "")
	}
	doc.SetY(-22)
	doc.CellFormat(0, 5, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "R", false, 0, "")
}

func drawInfoPage(doc *fpdf.Fpdf, tr func(string) string, company string, highlights []string) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(200, 0, 0)
	title := "Why choose us?"
	if company != "" {
		title = fmt.Sprintf("How is %s different from the others?", company)
	}
	doc.MultiCell(0, 8, tr(title), "", "L", false)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	for i, h := range highlights {
		doc.SetX(marginX + 6)
		doc.MultiCell(0, 6, tr(fmt.Sprintf("%d) %s", i+1, h)), "", "L", false)
		doc.Ln(3)
	}
}

func drawReference(doc *fpdf.Fpdf, tr func(string) string, data *DocumentData) {
	half := (210 - 2*marginX) / 2
	date := data.Date
	if date.IsZero() {
		date = time.Now()
	}

	doc.SetFont("Helvetica", "", 10)
	switch data.Kind {
	case KindInvoice:
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(half, 6, "DATE: "+date.Format(dateLayout), "", 0, "L", false, 0, "")
		doc.CellFormat(half, 6, tr("INVOICE NO: "+data.Number), "", 1, "R", false, 0, "")
		left := ""
		if data.DueDate != nil {
			left = "DUE DATE: " + data.DueDate.Format(dateLayout)
		}
		right := ""
		if data.PaymentStatus != "" {
			right = "STATUS: " + strings.ToUpper(data.PaymentStatus)
		}
		if left != "" || right != "" {
			doc.CellFormat(half, 6, left, "", 0, "L", false, 0, "")
			doc.CellFormat(half, 6, right, "", 1, "R", false, 0, "")
		}
	default:
		validity := ""
		if data.ValidUntil != nil {
			validity = "Valid until " + data.ValidUntil.Format(dateLayout)
		}
		doc.SetTextColor(200, 0, 0)
		doc.CellFormat(half, 6, validity, "", 0, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(half, 6, "DATE : "+date.Format(dateLayout), "", 1, "R", false, 0, "")
		doc.CellFormat(half, 6, "", "", 0, "L", false, 0, "")
		doc.CellFormat(half, 6, tr("REF  : "+data.Number), "", 1, "R", false, 0, "")
	}
	doc.Ln(6)
}

func drawClient(doc *fpdf.Fpdf, tr func(string) string, data *DocumentData) {
	c := data.Client
	if c.Name == "" && c.Address == "" {
		return
	}
	if data.Kind == KindInvoice {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(0, 6, "BILL TO:", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, line := range nonEmpty(c.Name, phoneLine(c.Phone), c.Address) {
			doc.SetX(marginX + 4)
			doc.MultiCell(0, 5, tr(line), "", "L", false)
		}
	} else {
		doc.SetFont("Helvetica", "B", 11)
		if c.Name != "" {
			doc.CellFormat(0, 6, tr("Customer: "+c.Name), "", 1, "L", false, 0, "")
		}
		if c.Phone != "" {
			doc.CellFormat(0, 6, tr("Phone: "+c.Phone), "", 1, "L", false, 0, "")
		}
		if c.Address != "" {
			doc.MultiCell(0, 6, tr("Location: "+c.Address), "", "L", false)
		}
	}
	doc.Ln(5)
}

func drawItems(doc *fpdf.Fpdf, tr func(string) string, data *DocumentData) {
	headers := [5]string{"Sl", "DESCRIPTION", "RATE", "QTY", "AMOUNT"}
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(208, 208, 208)
	for i, h := range headers {
		doc.CellFormat(colWidths[i], rowHeight+2, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for i, it := range data.Items {
		desc := tr(it.Description)
		if w := colWidths[1] - 2; doc.GetStringWidth(desc) > w {
			desc = fitText(doc, desc, w)
		}
		doc.CellFormat(colWidths[0], rowHeight, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[1], rowHeight, desc, "1", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[2], rowHeight, Amount(it.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[3], rowHeight, Amount(it.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], rowHeight, Amount(it.Total), "1", 1, "R", false, 0, "")
	}

	for i := len(data.Items); i < MinTableRows(data.Kind); i++ {
		for c, w := range colWidths {
			ln := 0
			if c == len(colWidths)-1 {
				ln = 1
			}
			doc.CellFormat(w, rowHeight, "", "1", ln, "", false, 0, "")
		}
	}
}

func drawTotals(doc *fpdf.Fpdf, data *DocumentData) {
	labelW := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3]
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(labelW, rowHeight, label, "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], rowHeight, value, "1", 1, "R", false, 0, "")
	}

	showBreakdown := !data.TaxAmount.IsZero() || !data.Discount.IsZero()
	if showBreakdown {
		row("SUBTOTAL", Amount(data.Subtotal), false)
		if !data.TaxAmount.IsZero() {
			row(fmt.Sprintf("TAX (%s%%)", data.TaxPercent.String()), Amount(data.TaxAmount), false)
		}
		if !data.Discount.IsZero() {
			row("DISCOUNT", "-"+Amount(data.Discount), false)
		}
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(labelW, rowHeight+1, "TOTAL", "1", 0, "R", false, 0, "")
	doc.CellFormat(colWidths[4], rowHeight+1, Amount(data.GrandTotal), "1", 1, "R", false, 0, "")
}

// Amount formats a money or quantity value: whole numbers without decimals,
// everything else with two.
func Amount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}

func fitText(doc *fpdf.Fpdf, s string, width float64) string {
	const ellipsis = "..."
	for len(s) > 0 && doc.GetStringWidth(s+ellipsis) > width {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}

func phoneLine(phone string) string {
	if phone == "" {
		return ""
	}
	return "Phone: " + phone
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
