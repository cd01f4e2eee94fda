package parser

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const defaultRetryAfter = 60 * time.Second

// RateLimitError is returned when a provider answers HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps err for provider. A non-positive retryAfterSecs
// falls back to one minute.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := defaultRetryAfter
	if retryAfterSecs > 0 {
		retryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return &RateLimitError{Err: err, RetryAfter: retryAfter, Provider: provider}
}

// RetryAfter reports how long the caller should wait when err carries a
// RateLimitError anywhere in its chain.
func RetryAfter(err error) (time.Duration, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	return 0, false
}

// ParseRetryAfterHeader reads a Retry-After header given in seconds.
// HTTP-date values and garbage yield 0.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
