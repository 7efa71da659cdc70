package tether

import (
	"context"

	"github.com/zoobzio/pipz"
)

// WithFilter gates the recompute pipeline on a predicate.
//
// When the predicate returns false the frame passes through untouched:
// the reactive function does not run and the cached value keeps its
// previous contents. The predicate sees the frame before recompute, so
// it can inspect FirstRun and Previous but not the incoming value.
//
// Example:
//
//	// Never skip the first paint, then recompute only while visible
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithFilter[Doc](func(f *tether.Frame[Doc]) bool {
//	        return f.FirstRun || visible.Load()
//	    }))
func WithFilter[T any](predicate func(*Frame[T]) bool) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		wrapper := func(_ context.Context, f *Frame[T]) bool {
			return predicate(f)
		}
		return pipz.NewFilter("filter", wrapper, next)
	}
}
