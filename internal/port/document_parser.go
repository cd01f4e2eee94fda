package port

import (
	"context"
	"encoding/json"
)

// ParseInput carries a customer request and the tenant catalog it should be
// matched against.
type ParseInput struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// ParseOutput contains the raw JSON answer from an LLM provider.
type ParseOutput struct {
	StructuredData json.RawMessage
	ModelUsed      string
	Provider       string
}

// DraftParser abstracts LLM-based extraction of quotation items from free text.
type DraftParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
