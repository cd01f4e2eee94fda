package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"quotely/internal/domain"
)

// Sampling settings used for quotation drafting.
const (
	DraftTemperature = 0.3
	DraftMaxTokens   = 2000
)

// DraftSystemPrompt instructs the model to turn a customer request into
// quotation lines drawn from the tenant's catalog.
const DraftSystemPrompt = `You are a quotation assistant for a small installation and supply business.
You receive the seller's inventory and a free-text customer request, and you
propose the line items for a quotation.

Rules:
- Prefer items from the inventory. When you use one, copy its ID into
  "inventory_id", its code into "item_code", and use its price and unit.
- When nothing in the inventory fits, still add the item with
  "inventory_id": null and your best estimate of the unit price.
- Quantities are positive numbers. Default to 1 when the request is silent.
- Extract the customer's name and phone number if they are mentioned.
- Put installation remarks or assumptions in "notes".

Respond with a single JSON object and nothing else:
{
  "customer_name": "",
  "customer_phone": "",
  "notes": "",
  "items": [
    {"item_name": "", "item_code": "", "inventory_id": null,
     "quantity": 1, "unit": "piece", "unit_price": 0}
  ]
}`

// BuildCatalog renders inventory as the text block the model matches against.
func BuildCatalog(items []domain.InventoryItem) string {
	if len(items) == 0 {
		return "No inventory items available."
	}
	var b strings.Builder
	b.WriteString("AVAILABLE INVENTORY:\n")
	for i := range items {
		it := &items[i]
		code := it.ItemCode
		if code == "" {
			code = "N/A"
		}
		fmt.Fprintf(&b, "- ID:%s | Code:%s | %s | Unit:%s | Price:%s\n",
			it.ID, code, it.ItemName, it.Unit, it.UnitPrice.StringFixed(2))
	}
	return b.String()
}

// BuildUserPrompt combines the catalog and the customer's request.
func BuildUserPrompt(catalog, request string) string {
	return catalog + "\nCUSTOMER REQUEST:\n" + strings.TrimSpace(request) +
		"\n\nGenerate quotation items based on the above request. Match inventory items where possible.\n" +
		"Return ONLY valid JSON, no markdown formatting.\n"
}

// StripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSON strips fences from a model answer and checks that what
// remains is a JSON document.
func ExtractJSON(text string) (json.RawMessage, error) {
	cleaned := StripCodeFences(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDraftUnparseable, Truncate(cleaned, 500))
	}
	return json.RawMessage(cleaned), nil
}

// Truncate shortens s to maxLen bytes for log and error output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
