package tether

import "sync"

// ManualEngine is an Engine driven explicitly by the caller. First runs
// execute synchronously inside Compute; later pulses are delivered by
// calling Invalidate on the returned computation. It tracks no
// dependencies — useful for tests and for custom sources that know when
// their data changed.
type ManualEngine struct {
	mu         sync.Mutex
	inactive   bool
	creates    int
	stops      int
	isolations int
	depth      int
}

// NewManualEngine creates a ManualEngine with live reactivity enabled.
func NewManualEngine() *ManualEngine {
	return &ManualEngine{}
}

// SetActive toggles the engine's reactivity flag. An inactive engine
// models a static or server rendering environment.
func (e *ManualEngine) SetActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inactive = !active
}

// Active reports whether live reactivity is available.
func (e *ManualEngine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.inactive
}

// Isolate runs fn outside any enclosing computation. ManualEngine has no
// capture semantics to escape; it records the call so tests can assert
// computations were created isolated.
func (e *ManualEngine) Isolate(fn func()) {
	e.mu.Lock()
	e.isolations++
	e.depth++
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.depth--
		e.mu.Unlock()
	}()
	fn()
}

// Compute registers fn as a new computation and runs it synchronously
// for its first run.
func (e *ManualEngine) Compute(fn func(Computation)) Computation {
	e.mu.Lock()
	e.creates++
	isolated := e.depth > 0
	e.mu.Unlock()

	c := &ManualComputation{
		engine:   e,
		fn:       fn,
		isolated: isolated,
		firstRun: true,
	}
	fn(c)
	c.mu.Lock()
	c.firstRun = false
	c.mu.Unlock()
	return c
}

// Creates returns how many computations the engine has created.
func (e *ManualEngine) Creates() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creates
}

// Stops returns how many Stop calls the engine has received.
func (e *ManualEngine) Stops() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stops
}

// Isolations returns how many Isolate calls the engine has received.
func (e *ManualEngine) Isolations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isolations
}

// ManualComputation is the handle for a computation created by a
// ManualEngine.
type ManualComputation struct {
	engine   *ManualEngine
	fn       func(Computation)
	isolated bool

	mu       sync.Mutex
	firstRun bool
	stopped  bool
}

// FirstRun reports whether the callback is executing its initial run.
func (c *ManualComputation) FirstRun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.firstRun
}

// Stop halts the computation. Every call is counted by the engine, so
// tests can detect double stops; the computation itself treats repeats
// as no-ops.
func (c *ManualComputation) Stop() {
	c.engine.mu.Lock()
	c.engine.stops++
	c.engine.mu.Unlock()

	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// Stopped reports whether Stop has been called.
func (c *ManualComputation) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Isolated reports whether the computation was created inside an Isolate
// block.
func (c *ManualComputation) Isolated() bool {
	return c.isolated
}

// Invalidate delivers a pulse, re-invoking the computation's callback.
// Safe to call from within the first run: the pulse is delivered as a
// subsequent run. Deliberately does not check stopped — it also models
// an engine whose stop has not yet taken effect, exercising the
// binding's stale-pulse guard.
func (c *ManualComputation) Invalidate() {
	c.mu.Lock()
	c.firstRun = false
	c.mu.Unlock()
	c.fn(c)
}
