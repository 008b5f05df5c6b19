package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quocvuong92/remote-hub/internal/logging"
)

// RetryPolicy bounds how often a description request is repeated after a
// transient failure and how long to wait in between.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy makes three attempts, waiting 500ms then 1s.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:    3,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
}

// Retryable reports whether err is an *APIError for a rate limit or a
// transient server failure.
func Retryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff is the wait after failed attempt number attempt (0-based). It
// doubles each time and never exceeds MaxBackoff.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for range attempt {
		if d >= p.MaxBackoff {
			break
		}
		d *= 2
	}
	return min(d, p.MaxBackoff)
}

// run calls send until it succeeds, fails with an error that is not
// Retryable, or MaxAttempts is used up.
func (p RetryPolicy) run(ctx context.Context, send func() (*ChatResponse, error)) (*ChatResponse, error) {
	attempts := max(p.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("description cancelled: %w", err)
		}

		resp, err := send()
		if err == nil {
			return resp, nil
		}
		if !Retryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		wait := p.Backoff(attempt)
		logging.Debug("retrying description request", logging.Fields{
			"attempt": attempt + 1,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("description cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("description failed after %d attempts: %w", attempts, lastErr)
}
