package tether

// Frame carries one recomputation through the processing pipeline. It
// gives pipeline stages access to the previous cached value and the
// freshly computed one, so middleware can diff, audit, or enrich each
// update before it is stored.
type Frame[T any] struct {
	// Comp is the computation the recomputation runs under. Nil when
	// the environment has no live reactivity (server rendering) or when
	// a deferred update is replayed after the computation was disposed.
	Comp Computation

	// FirstRun reports whether this frame is the initial synchronous
	// computation performed at creation.
	FirstRun bool

	// Previous is the last cached value. The zero value of T on the
	// first run.
	Previous T

	// Current is the newly computed value. The terminal stage writes
	// it; later middleware may observe or adjust it before it is
	// cached.
	Current T
}
