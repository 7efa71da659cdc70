package tether

import (
	"time"

	"github.com/zoobzio/pipz"
)

// WithCircuitBreaker protects the recompute against repeated failures.
//
// After the threshold number of consecutive failures, the breaker opens
// and recomputes fail fast without running the reactive function. After
// the timeout elapses, the breaker allows a trial recompute; success
// closes it again.
//
// This is useful when the reactive function reaches out to an external
// system that may be down, keeping invalidation storms from hammering it.
//
// Example:
//
//	// Open after 5 consecutive failures, retry after 30 seconds
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithCircuitBreaker[Doc](5, 30*time.Second))
func WithCircuitBreaker[T any](threshold int, timeout time.Duration) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewCircuitBreaker("circuit-breaker", next, threshold, timeout)
	}
}
