package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// isQuotaError reports rate-limit or quota exhaustion, which rotates to the
// next API key before retrying.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// isTransientError reports network, timeout, and server-side conditions worth
// retrying on the same key.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"timeout",
		"connection refused",
		"connection reset",
		"unavailable",
		"internal error",
		"500",
		"503",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// withRetry runs op under exponential backoff. Quota errors rotate the API
// key and retry; transient errors retry as-is; everything else is permanent.
// The attempt cap and backoff window come from retry config.
func (c *implClient) withRetry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		switch {
		case err == nil:
			return nil
		case isQuotaError(err):
			_, pos := c.currentAPIKey()
			c.logger.Warn(ctx, "API key %d rate limited, rotating", pos)
			c.rotateKey()
			return err
		case isTransientError(err):
			c.logger.Warn(ctx, "Transient LLM error, will retry: %v", err)
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Duration(c.retry.BackoffBaseMs) * time.Millisecond
	bo.MaxInterval = time.Duration(c.retry.BackoffCapMs) * time.Millisecond
	bo.MaxElapsedTime = 0

	attempts := uint64(c.retry.MaxAttempts)
	if attempts > 0 {
		attempts--
	}

	return backoff.Retry(wrapped, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), attempts))
}
