package tether

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// DefaultGuardDelay is the default leak-guard delay: how long a
// computation created during an uncommitted render may live before it is
// disposed.
const DefaultGuardDelay = 50 * time.Millisecond

// recomputeID identifies the terminal pipeline stage that applies the
// reactive function.
var recomputeID = pipz.Name("tether:recompute")

// Binding ties one component instance to one reactive data source. It
// owns the live computation, the cached result, and all lifecycle state
// for that instance; nothing is shared across instances.
//
// The host runtime calls Render during each render pass, Commit after
// each commit, and Unmount on teardown. The reactive engine re-enters
// the binding through invalidation pulses. All four paths feed a single
// state machine guarded by one mutex; user callbacks always run with the
// lock released, so pulses that fire synchronously from within a
// creation's first run are captured rather than deadlocked.
type Binding[T any] struct {
	engine     Engine
	pipeline   pipz.Chainable[*Frame[T]]
	clock      clockz.Clock
	guardDelay time.Duration
	onUpdate   func()
	handler    func(Computation) CleanupFunc
	dev        bool
	warnValue  func(any) bool
	metrics    MetricsProvider

	mu        sync.Mutex
	ctx       context.Context
	mount     MountState
	deferred  bool
	comp      Computation
	cleanup   CleanupFunc
	guard     *guardTimer
	epoch     uint64
	result    T
	hasResult bool
	lastErr   error
	prevDeps  []any
	hasPrev   bool
	failures  *failureRing
}

// Bind creates a Binding for one component instance.
//
// fn is the reactive function: it (re)computes the value the component
// displays. It receives the computation it runs under, or nil in a
// non-reactive environment, and must not recreate that computation
// itself. Pipeline options (With*) wrap fn with middleware; instance
// configuration uses chainable methods before the first Render.
//
// Bind panics if engine or fn is nil; the binding cannot operate
// best-effort without either.
//
// Example:
//
//	b := tether.Bind(engine, func(ctx context.Context, c tether.Computation) ([]Doc, error) {
//	    return store.Find(ctx, query)
//	}).OnUpdate(elem.MarkNeedsBuild).GuardDelay(100 * time.Millisecond)
func Bind[T any](engine Engine, fn func(context.Context, Computation) (T, error), opts ...Option[T]) *Binding[T] {
	if engine == nil {
		panic("tether: engine is required")
	}
	if fn == nil {
		panic("tether: reactive function is required")
	}

	terminal := pipz.Apply(recomputeID, func(ctx context.Context, f *Frame[T]) (*Frame[T], error) {
		v, err := fn(ctx, f.Comp)
		if err != nil {
			return f, err
		}
		f.Current = v
		return f, nil
	})

	b := &Binding[T]{
		engine:     engine,
		pipeline:   buildPipeline(terminal, opts),
		clock:      clockz.RealClock,
		guardDelay: DefaultGuardDelay,
		ctx:        context.Background(),
	}

	capitan.Emit(b.ctx, BindingBound,
		KeyGuardDelay.Field(b.guardDelay),
	)
	return b
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// OnUpdate sets the host runtime's re-render trigger. The binding calls
// it after an invalidation's result has been cached, never before, and
// never after Unmount. Must be called before the first Render.
func (b *Binding[T]) OnUpdate(fn func()) *Binding[T] {
	b.onUpdate = fn
	return b
}

// Handler sets the computation-attach handler, invoked once per
// computation creation with the new handle, before the first-run result
// is computed. A returned CleanupFunc runs during disposal, before the
// computation is stopped. Must be called before the first Render.
func (b *Binding[T]) Handler(fn func(Computation) CleanupFunc) *Binding[T] {
	b.handler = fn
	return b
}

// Clock sets a custom clock for the leak guard and failure timestamps.
// Use this with clockz.FakeClock for deterministic guard testing.
// Must be called before the first Render.
func (b *Binding[T]) Clock(clock clockz.Clock) *Binding[T] {
	b.clock = clock
	return b
}

// GuardDelay sets the leak-guard delay. A computation created before the
// first commit is disposed if commit has not happened within this
// duration. Default: DefaultGuardDelay. Must be called before the first
// Render.
func (b *Binding[T]) GuardDelay(d time.Duration) *Binding[T] {
	b.guardDelay = d
	return b
}

// DevMode enables development-only advisory diagnostics. The flag is
// resolved once here, not read from a global at runtime. Must be called
// before the first Render.
func (b *Binding[T]) DevMode(enabled bool) *Binding[T] {
	b.dev = enabled
	return b
}

// WarnValue sets the predicate for the non-reactive-value warning. In
// dev mode, after each recomputation the predicate is applied to the
// result and its direct members; a match emits BindingNonReactiveValue.
// The predicate keeps the binding free of a compile-time dependency on
// whichever live-handle type the host environment uses. Must be called
// before the first Render.
func (b *Binding[T]) WarnValue(pred func(any) bool) *Binding[T] {
	b.warnValue = pred
	return b
}

// Metrics sets a metrics provider for observability integration.
// Must be called before the first Render.
func (b *Binding[T]) Metrics(provider MetricsProvider) *Binding[T] {
	b.metrics = provider
	return b
}

// FailureHistorySize sets the number of recent failures to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before the first Render.
func (b *Binding[T]) FailureHistorySize(n int) *Binding[T] {
	b.failures = newFailureRing(n)
	return b
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Current returns the most recently cached result and true, or the zero
// value and false if no result has been computed yet.
func (b *Binding[T]) Current() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasResult {
		var zero T
		return zero, false
	}
	return b.result, true
}

// Mount returns the binding's current mount state.
func (b *Binding[T]) Mount() MountState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mount
}

// Live reports whether the binding currently holds a live computation.
func (b *Binding[T]) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.comp != nil
}

// LastError returns the last recomputation or cleanup error, or nil.
// Cleared by the next successful recomputation.
func (b *Binding[T]) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Failures returns the recent failure history, oldest first. Returns nil
// unless FailureHistorySize was set.
func (b *Binding[T]) Failures() []Failure {
	b.mu.Lock()
	ring := b.failures
	b.mu.Unlock()
	return ring.all()
}

// -----------------------------------------------------------------------------
// Lifecycle Entry Points
// -----------------------------------------------------------------------------

// Render is the render-pass entry point. It recreates the computation
// when the dependency list's identity differs from the previous render
// (a nil deps slice always differs, including from itself), then returns
// the cached result. The first run of a fresh computation executes
// synchronously inside this call, so the value is never stale on first
// paint.
//
// The returned error is the reactive function's own failure from a first
// run triggered by this render; it is nil when no recreation occurred.
func (b *Binding[T]) Render(ctx context.Context, deps []any) (T, error) {
	b.mu.Lock()
	if ctx != nil {
		b.ctx = ctx
	} else {
		ctx = b.ctx
	}
	fresh := !b.hasPrev || !sameDeps(b.prevDeps, deps)
	b.prevDeps = deps
	b.hasPrev = true
	b.mu.Unlock()

	var err error
	if fresh {
		err = b.recreate(ctx, deps)
	}

	b.mu.Lock()
	v := b.result
	b.mu.Unlock()
	return v, err
}

// recreate tears down any existing computation and creates a fresh one
// bound to the tracked callback, isolated from any enclosing
// computation. In a non-reactive environment it runs the callback once
// with a nil handle and creates nothing. Until first commit, every
// creation arms the leak guard.
func (b *Binding[T]) recreate(ctx context.Context, deps []any) error {
	b.dispose(ctx)

	capitan.Emit(ctx, BindingRecreated,
		KeyDepCount.Field(depCount(deps)),
	)
	if b.metrics != nil {
		b.metrics.OnRecreate()
	}

	b.mu.Lock()
	epoch := b.epoch
	b.mu.Unlock()

	if !b.engine.Active() {
		return b.tracked(ctx, nil, true, epoch)
	}

	var comp Computation
	var firstErr error
	b.engine.Isolate(func() {
		comp = b.engine.Compute(func(c Computation) {
			if c.FirstRun() {
				firstErr = b.tracked(ctx, c, true, epoch)
				return
			}
			b.tracked(b.pulseCtx(), c, false, epoch)
		})
	})

	b.mu.Lock()
	if b.epoch != epoch {
		// disposed while creating; the fresh handle has no owner
		b.mu.Unlock()
		if comp != nil {
			comp.Stop()
		}
		return firstErr
	}
	b.comp = comp
	mounted := b.mount == MountMounted
	b.mu.Unlock()

	if !mounted {
		b.armGuard(ctx, epoch)
	}
	return firstErr
}

// Commit is the post-commit entry point. The first call finalizes the
// mounted state and cancels the leak guard; every call re-checks whether
// reconciliation is still needed: a computation disposed by an expired
// guard is recreated when the dependency list is a proper ordered list,
// and a deferred update is replayed exactly once — recomputed, cached,
// and only then surfaced through OnUpdate.
func (b *Binding[T]) Commit(ctx context.Context) error {
	b.mu.Lock()
	if ctx != nil {
		b.ctx = ctx
	} else {
		ctx = b.ctx
	}
	prev := b.mount
	b.mount = MountMounted
	guard := b.guard
	b.guard = nil
	needsComp := b.comp == nil && b.prevDeps != nil && b.engine.Active()
	if needsComp {
		b.deferred = true
	}
	deps := b.prevDeps
	b.mu.Unlock()

	if guard != nil {
		guard.cancel()
	}
	if prev != MountMounted {
		b.mountChanged(ctx, prev, MountMounted)
		capitan.Emit(ctx, BindingCommitted)
	}

	var err error
	if needsComp {
		err = b.recreate(ctx, deps)
	}

	b.mu.Lock()
	replay := b.deferred
	b.deferred = false
	comp := b.comp
	epoch := b.epoch
	b.mu.Unlock()

	if !replay {
		return err
	}

	if comp != nil {
		stale, rerr := b.compute(ctx, comp, false, epoch, "replay")
		if rerr != nil {
			if err == nil {
				err = rerr
			}
			return err
		}
		if stale {
			// Disposed during the replay; the update has no recipient.
			return err
		}
	}
	capitan.Emit(ctx, BindingReplayed)
	if b.metrics != nil {
		b.metrics.OnReplay()
	}
	b.requestUpdate()
	return err
}

// Unmount is the final teardown: the cleanup runs, the computation
// stops, the guard cancels, and no re-render request is ever issued for
// this binding again. Idempotent.
func (b *Binding[T]) Unmount() {
	b.mu.Lock()
	ctx := b.ctx
	b.mu.Unlock()

	b.dispose(ctx)
	capitan.Emit(ctx, BindingUnmounted)
}

// -----------------------------------------------------------------------------
// Disposal
// -----------------------------------------------------------------------------

// dispose is the idempotent teardown path: run the cleanup (if any),
// stop the computation (if any), cancel the guard. Safe when nothing is
// held. Bumping the epoch invalidates every pulse still in flight
// through the old handle.
func (b *Binding[T]) dispose(ctx context.Context) {
	b.mu.Lock()
	cleanup := b.cleanup
	b.cleanup = nil
	comp := b.comp
	b.comp = nil
	guard := b.guard
	b.guard = nil
	b.epoch++
	b.mu.Unlock()

	if guard != nil {
		guard.cancel()
	}
	if cleanup == nil && comp == nil {
		return
	}

	// A cleanup failure is recorded but never blocks the stop: an
	// unstopped computation outlives the component, a lost cleanup
	// error does not.
	if cleanup != nil {
		if err := cleanup(); err != nil {
			b.recordFailure(ctx, "cleanup", err)
		}
	}
	if comp != nil {
		comp.Stop()
	}
	capitan.Emit(ctx, BindingDisposed)
}

// -----------------------------------------------------------------------------
// Internal plumbing
// -----------------------------------------------------------------------------

// pulseCtx returns the context asynchronous paths (pulses, guard expiry)
// should attribute their work to: the most recent render's.
func (b *Binding[T]) pulseCtx() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

func (b *Binding[T]) requestUpdate() {
	if b.onUpdate != nil {
		b.onUpdate()
	}
}

func (b *Binding[T]) mountChanged(ctx context.Context, from, to MountState) {
	capitan.Emit(ctx, BindingMountChanged,
		KeyOldMount.Field(from.String()),
		KeyNewMount.Field(to.String()),
	)
	if b.metrics != nil {
		b.metrics.OnMountChange(from, to)
	}
}

func (b *Binding[T]) recordFailure(ctx context.Context, op string, err error) {
	b.mu.Lock()
	b.lastErr = err
	ring := b.failures
	b.mu.Unlock()

	ring.push(Failure{Op: op, Err: err, At: b.clock.Now()})

	sig := BindingRecomputeFailed
	if op == "cleanup" {
		sig = BindingCleanupFailed
	}
	capitan.Emit(ctx, sig,
		KeyOp.Field(op),
		KeyError.Field(err.Error()),
	)
}

// compute runs one recomputation through the pipeline and caches the
// result unless the binding was disposed mid-flight. The cache write
// always precedes any OnUpdate issued by the caller. stale reports a
// disposal during the pipeline run; callers must not surface an update
// for a stale recomputation.
func (b *Binding[T]) compute(ctx context.Context, c Computation, first bool, epoch uint64, op string) (stale bool, err error) {
	start := b.clock.Now()

	b.mu.Lock()
	prev := b.result
	b.mu.Unlock()

	// Seed Current with the previous value so a frame that bypasses the
	// reactive function (filtered recomputes) caches it unchanged.
	frame := &Frame[T]{Comp: c, FirstRun: first, Previous: prev, Current: prev}
	out, perr := b.pipeline.Process(ctx, frame)
	if perr != nil {
		b.recordFailure(ctx, op, perr)
		if b.metrics != nil {
			b.metrics.OnRecomputeFailure(op, b.clock.Since(start))
		}
		return false, fmt.Errorf("%s failed: %w", op, perr)
	}

	b.mu.Lock()
	stale = b.epoch != epoch
	if !stale {
		b.result = out.Current
		b.hasResult = true
		b.lastErr = nil
	}
	b.mu.Unlock()
	if stale {
		return true, nil
	}

	if first {
		capitan.Emit(ctx, BindingFirstRun)
	}
	if b.metrics != nil {
		b.metrics.OnRecomputeSuccess(b.clock.Since(start))
	}
	b.warnCheck(ctx, out.Current)
	return false, nil
}
