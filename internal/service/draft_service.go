package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotely/internal/domain"
	"quotely/internal/parser"
	"quotely/internal/port"
)

// DraftQuotationInput is the free-text customer request to draft from.
type DraftQuotationInput struct {
	Text string `json:"raw_text" binding:"required"`
}

// DraftService proposes quotation lines from free text using an LLM and the
// tenant's catalog. Drafts are never persisted.
type DraftService interface {
	DraftQuotation(ctx context.Context, tenantID uuid.UUID, input DraftQuotationInput) (*domain.QuotationDraft, error)
}

type draftService struct {
	parser        port.DraftParser
	inventoryRepo port.InventoryRepository
}

// NewDraftService creates a DraftService. A nil parser makes every call fail
// with domain.ErrParserNotConfigured.
func NewDraftService(p port.DraftParser, inventoryRepo port.InventoryRepository) DraftService {
	return &draftService{parser: p, inventoryRepo: inventoryRepo}
}

// draftPayload mirrors the JSON object the model is asked to return. Fields
// are loose because models do not always honor the requested types.
type draftPayload struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	Notes         *string `json:"notes"`
	Items         []struct {
		ItemName    *string             `json:"item_name"`
		ItemCode    *string             `json:"item_code"`
		InventoryID json.RawMessage     `json:"inventory_id"`
		Quantity    decimal.NullDecimal `json:"quantity"`
		UnitPrice   decimal.NullDecimal `json:"unit_price"`
		Unit        *string             `json:"unit"`
	} `json:"items"`
}

func (s *draftService) DraftQuotation(ctx context.Context, tenantID uuid.UUID, input DraftQuotationInput) (*domain.QuotationDraft, error) {
	if s.parser == nil {
		return nil, domain.ErrParserNotConfigured
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: request text is empty", domain.ErrDraftUnparseable)
	}

	catalog, err := s.inventoryRepo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	out, err := s.parser.Parse(ctx, port.ParseInput{
		SystemPrompt: parser.DraftSystemPrompt,
		UserPrompt:   parser.BuildUserPrompt(parser.BuildCatalog(catalog), text),
		Temperature:  parser.DraftTemperature,
		MaxTokens:    parser.DraftMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var payload draftPayload
	if err := json.Unmarshal(out.StructuredData, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDraftUnparseable, err)
	}

	known := make(map[uuid.UUID]struct{}, len(catalog))
	for i := range catalog {
		known[catalog[i].ID] = struct{}{}
	}

	draft := &domain.QuotationDraft{
		CustomerName:  deref(payload.CustomerName),
		CustomerPhone: deref(payload.CustomerPhone),
		Notes:         deref(payload.Notes),
		Items:         make([]domain.DraftItem, 0, len(payload.Items)),
		Model:         out.ModelUsed,
		Provider:      out.Provider,
	}
	for _, it := range payload.Items {
		item := domain.DraftItem{
			InventoryID: catalogRef(it.InventoryID, known),
			ItemCode:    strings.TrimSpace(deref(it.ItemCode)),
			ItemName:    strings.TrimSpace(deref(it.ItemName)),
			Unit:        strings.TrimSpace(deref(it.Unit)),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.Zero,
		}
		if item.ItemName == "" {
			item.ItemName = "Unknown Item"
		}
		if item.Unit == "" {
			item.Unit = domain.DefaultUnit
		}
		if it.Quantity.Valid {
			item.Quantity = it.Quantity.Decimal
		}
		if it.UnitPrice.Valid {
			item.UnitPrice = it.UnitPrice.Decimal
		}
		draft.Items = append(draft.Items, item)
	}
	return draft, nil
}

// catalogRef keeps a model-supplied inventory ID only when it names an item
// of the tenant's catalog.
func catalogRef(raw json.RawMessage, known map[uuid.UUID]struct{}) *uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	if _, ok := known[id]; !ok {
		return nil
	}
	return &id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
