package h2ogpte

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxRetries   = 5
	defaultInitialDelay = 2 * time.Second
)

// apiError is a non-2xx response from the h2oGPTe API.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("h2oGPTe API returned %d: %s", e.status, e.body)
}

// retryWithBackoff executes fn with exponential backoff, honoring context
// cancellation between attempts. Permanent errors fail immediately.
func retryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := defaultInitialDelay

	for attempt := 0; attempt <= defaultMaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[h2oGPTe] Retry attempt %d/%d after %v delay", attempt+1, defaultMaxRetries+1, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}
	}

	log.Printf("[h2oGPTe] All %d attempts failed, giving up", defaultMaxRetries+1)
	return lastErr
}

// isRetryableError reports whether an error is transient: server-side
// failures, throttling, or the usual network hiccups.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.status >= http.StatusInternalServerError ||
			apiErr.status == http.StatusTooManyRequests
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"eof",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary failure",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
