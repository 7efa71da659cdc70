package tether

import "github.com/zoobzio/pipz"

// WithFallback runs an alternate processor when the recompute fails.
//
// If the reactive function returns an error, the fallback processor is
// attempted with the same frame. A fallback that sets Frame.Current and
// returns nil turns a failed recompute into a cached value, which is
// useful for presenting a placeholder or the last known good state.
//
// Example:
//
//	// Present an empty document when loading fails
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithFallback[Doc](pipz.Apply(pipz.Name("empty-doc"),
//	        func(_ context.Context, f *tether.Frame[Doc]) (*tether.Frame[Doc], error) {
//	            f.Current = Doc{}
//	            return f, nil
//	        })))
func WithFallback[T any](fallback pipz.Chainable[*Frame[T]]) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewFallback("fallback", next, fallback)
	}
}
