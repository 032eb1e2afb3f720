package github

import (
	"log"
	"strings"
	"time"
)

const (
	defaultMaxRetries   = 8
	defaultInitialDelay = 1 * time.Second
)

// retryWithBackoff executes a GitHub API call with exponential backoff so
// transient network failures recover without surfacing to the user.
func retryWithBackoff(fn func() error) error {
	var lastErr error
	delay := defaultInitialDelay

	for attempt := 0; attempt <= defaultMaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[GitHub] Retry attempt %d/%d after %v delay", attempt+1, defaultMaxRetries+1, delay)
			time.Sleep(delay)
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

	log.Printf("[GitHub] All %d attempts failed, giving up", defaultMaxRetries+1)
	return lastErr
}

// isRetryableError classifies transient network and throttling failures.
// Permission and validation errors are permanent and fail immediately.
func isRetryableError(err error) bool {
	if err == nil {
		return false
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
		"rate limit",
		"502",
		"503",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
