package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotely/internal/config"
	"quotely/internal/parser"
	"quotely/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	providerName = "claude"
)

func init() {
	parser.RegisterProvider(providerName, func(cfg *config.ParserProviderConfig) (port.DraftParser, error) {
		return NewParser(cfg), nil
	})
}

// Parser implements port.DraftParser using the Anthropic Messages API.
type Parser struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewParser builds a parser from cfg. An empty cfg.Endpoint targets Anthropic.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, cfg.Endpoint)
}

// NewParserWithEndpoint overrides the configured endpoint.
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	if endpoint == "" {
		endpoint = apiURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Parser{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	reqBody := map[string]interface{}{
		"model":       p.model,
		"max_tokens":  input.MaxTokens,
		"temperature": input.Temperature,
		"system":      input.SystemPrompt,
		"messages": []map[string]interface{}{
			{"role": "user", "content": input.UserPrompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, parser.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, parser.NewRateLimitError(providerName, baseErr, parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
		}
		return nil, baseErr
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, errors.New("empty response from API")
	}
	if parsed.StopReason == "max_tokens" {
		return nil, errors.New("output truncated (stop_reason: max_tokens)")
	}

	data, err := parser.ExtractJSON(parsed.Content[0].Text)
	if err != nil {
		return nil, err
	}
	return &port.ParseOutput{StructuredData: data, ModelUsed: p.model, Provider: providerName}, nil
}
