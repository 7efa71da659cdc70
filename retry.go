package tether

import (
	"time"

	"github.com/zoobzio/pipz"
)

// WithRetry retries a failed recompute.
//
// The reactive function is re-run up to the specified number of attempts.
// Retries are immediate without delay. For exponential backoff between
// attempts, use WithBackoff instead.
//
// Retries stop immediately if the context is canceled. Only the final
// attempt's outcome is cached and reported.
//
// Example:
//
//	// Retry up to 3 times on failure
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithRetry[Doc](3))
func WithRetry[T any](attempts int) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewRetry("retry", next, attempts)
	}
}

// WithBackoff retries a failed recompute with exponential backoff.
//
// The reactive function is re-run with exponentially increasing delays
// between attempts. The delay starts at baseDelay and doubles with each
// retry.
//
// This is preferred over WithRetry for functions that might fail due to
// temporary overload or rate limiting.
//
// Example:
//
//	// Retry 5 times with exponential backoff starting at 100ms
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithBackoff[Doc](5, 100*time.Millisecond))
func WithBackoff[T any](attempts int, baseDelay time.Duration) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewBackoff("backoff", next, attempts, baseDelay)
	}
}
