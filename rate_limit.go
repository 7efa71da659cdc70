package tether

import "github.com/zoobzio/pipz"

// WithRateLimit throttles how often the recompute pipeline runs.
//
// Recomputes beyond the rate wait for permission, pacing a chatty engine
// that pulses faster than the component can usefully re-render. The wait
// happens on the engine's delivery path, so pulses are delayed rather
// than lost.
//
// Example:
//
//	// At most 10 recomputes per second with bursts of 5
//	b := tether.Bind[Doc](engine, load,
//	    tether.WithRateLimit[Doc](10, 5))
func WithRateLimit[T any](rps float64, burst int) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		limiter := pipz.NewRateLimiter[*Frame[T]]("rate-limit", rps, burst)
		return pipz.NewSequence("rate-limited", limiter, next)
	}
}

// WithRateLimitDrop throttles recomputes, dropping those over the rate.
//
// Unlike WithRateLimit, excess recomputes fail immediately instead of
// waiting. The drop is recorded as a recompute failure, but the cached
// value stays at the last successful recompute, so a dropped pulse shows
// up as a skipped re-render.
func WithRateLimitDrop[T any](rps float64, burst int) Option[T] {
	return func(next pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		limiter := pipz.NewRateLimiter[*Frame[T]]("rate-limit", rps, burst).SetMode("drop")
		return pipz.NewSequence("rate-limited", limiter, next)
	}
}
