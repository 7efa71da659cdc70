package tether

import (
	"time"

	"github.com/zoobzio/pipz"
)

// WithTimeout bounds the duration of each recompute.
//
// If the reactive function takes longer than the specified duration, its
// context is canceled and the recompute fails with a timeout error. This
// protects the render path against functions that hang.
//
// The timeout covers the entire recompute pipeline, including middleware
// and any retries layered inside it.
//
// Example:
//
//	// Fail recomputes that take longer than 5 seconds
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithTimeout[Doc](5 * time.Second))
func WithTimeout[T any](duration time.Duration) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewTimeout("timeout", next, duration)
	}
}
