package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/avolkov/restruct/internal/llm"
)

const (
	// MaxRetries bounds model-call attempts per section.
	MaxRetries = 3

	backoffCap = 30 * time.Second
)

// IsRetryable reports whether err is a transient upstream failure. Only the
// model client's typed rate-limit/5xx errors qualify; recovery and parse
// failures retry through a fresh model call instead.
func IsRetryable(err error) bool {
	var retryErr *llm.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns the wait before retry attempt n (0-indexed): exponential
// from one second, capped, plus up to 50% jitter.
func Backoff(attempt int) time.Duration {
	d := time.Second << uint(attempt)
	if d > backoffCap {
		d = backoffCap
	}
	return d + time.Duration(rand.Int63n(int64(d/2)))
}
