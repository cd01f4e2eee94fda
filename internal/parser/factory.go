package parser

import (
	"fmt"
	"sort"

	"quotely/internal/config"
	"quotely/internal/port"
)

// ProviderFactory builds a DraftParser from one provider's settings.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.DraftParser, error)

var providers = map[string]ProviderFactory{}

// RegisterProvider makes a provider available to NewParser under name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// RegisteredProviders lists provider names in sorted order.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewParser looks up cfg.Provider in the registry and builds it.
func NewParser(cfg *config.ParserProviderConfig) (port.DraftParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the primary parser and, when a secondary provider is
// configured, wraps both in a FallbackParser. Providers without an API key
// are skipped; nil is returned when none is usable.
func NewFromConfig(cfg *config.ParserConfig) (port.DraftParser, error) {
	var (
		parsers []port.DraftParser
		names   []string
	)
	for _, pc := range []*config.ParserProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig()} {
		if pc == nil || pc.APIKey == "" {
			continue
		}
		p, err := NewParser(pc)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
		names = append(names, pc.Provider)
	}

	switch len(parsers) {
	case 0:
		return nil, nil
	case 1:
		return parsers[0], nil
	default:
		return NewFallbackParser(parsers, names), nil
	}
}
