package tether

// Computation is a live unit of recomputation registered with the
// reactive engine. The engine re-invokes the computation's callback
// whenever data read during its last run changes.
type Computation interface {
	// FirstRun reports whether the callback is executing the initial,
	// synchronous run that occurs at creation.
	FirstRun() bool

	// Stop permanently halts the computation. Safe to call more than
	// once; calls after the first are no-ops.
	Stop()
}

// Engine is the capability surface tether consumes from a reactive
// engine. Implementations wrap whichever dependency-tracking runtime the
// host environment provides.
type Engine interface {
	// Compute registers fn as a new computation and invokes it
	// synchronously for its first run before returning. Every later
	// invalidation invokes fn again with the same handle.
	Compute(fn func(Computation)) Computation

	// Isolate runs fn outside any enclosing computation, so that
	// computations created inside fn are not captured by (and not
	// stopped with) an outer one.
	Isolate(fn func())

	// Active reports whether live reactivity is available. It returns
	// false in static or server rendering environments, where tether
	// runs the reactive function once and creates nothing.
	Active() bool
}

// CleanupFunc tears down resources attached to a computation by a
// Handler. It is invoked at most once, always before the computation it
// belongs to is stopped. Its error is recorded but never blocks the
// stop call.
type CleanupFunc func() error
