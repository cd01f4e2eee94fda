// Package totals computes document amounts from line items.
//
// Every amount is rounded half away from zero to Scale places, the scale of
// the NUMERIC columns it is stored in, so the values computed here are the
// values read back.
package totals

import "github.com/shopspring/decimal"

// Scale is the number of decimal places kept for quantities, prices,
// percentages and amounts.
const Scale = 4

var hundred = decimal.NewFromInt(100)

// Line is the priced portion of a line item.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Result holds the derived amounts of a document.
type Result struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Round rounds d to Scale places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// LineTotal returns quantity × unit price, each operand and the product
// rounded to Scale.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(Round(quantity).Mul(Round(unitPrice)))
}

// Compute derives subtotal, tax and grand total. The subtotal is the sum of
// the rounded line totals. Negative inputs are not rejected and the total is
// not clamped.
func Compute(lines []Line, taxPercent, discount decimal.Decimal) Result {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Quantity, l.UnitPrice))
	}
	tax := Round(subtotal.Mul(Round(taxPercent)).Div(hundred))
	return Result{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax).Sub(Round(discount)),
	}
}
