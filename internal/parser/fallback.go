package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quotely/internal/port"
)

// circuit remembers until when a rate-limited provider should be skipped.
type circuit struct {
	mu      sync.RWMutex
	resetAt time.Time
}

func (c *circuit) openUntil(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuit) trip(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackParser tries providers in order. A provider that answered 429 is
// skipped until its Retry-After window has passed.
type FallbackParser struct {
	parsers  []port.DraftParser
	circuits []*circuit
	names    []string
}

// NewFallbackParser wraps parsers, named for logging, in priority order.
func NewFallbackParser(parsers []port.DraftParser, names []string) *FallbackParser {
	circuits := make([]*circuit, len(parsers))
	for i := range circuits {
		circuits[i] = &circuit{}
	}
	return &FallbackParser{parsers: parsers, circuits: circuits, names: names}
}

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	now := time.Now()
	var (
		lastErr        error
		earliestReset  time.Time
		allRateLimited = true
	)
	noteReset := func(t time.Time) {
		if earliestReset.IsZero() || t.Before(earliestReset) {
			earliestReset = t
		}
	}

	for i, p := range f.parsers {
		if resetAt, open := f.circuits[i].openUntil(now); open {
			log.Printf("parser.FallbackParser: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			noteReset(resetAt)
			continue
		}

		out, err := p.Parse(ctx, input)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Printf("parser.FallbackParser: %s failed: %v", f.names[i], err)
		lastErr = err

		var rl *RateLimitError
		if errors.As(err, &rl) {
			resetAt := now.Add(rl.RetryAfter)
			f.circuits[i].trip(resetAt)
			noteReset(resetAt)
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		wait := time.Until(earliestReset)
		if wait < time.Second {
			wait = time.Second
		}
		return nil, NewRateLimitError("all", errors.New("all parsers rate limited"), int(wait.Seconds()))
	}
	return nil, fmt.Errorf("all parsers failed: %w", lastErr)
}
