package tether

import (
	"context"

	"github.com/zoobzio/capitan"
)

// pulse actions for subsequent runs of the tracked callback.
const (
	actDefer = iota
	actTeardown
	actRecompute
)

// tracked is the callback every computation is bound to. The engine
// invokes it synchronously at creation (first run) and again on every
// invalidation. epoch pins the invocation to the computation generation
// it belongs to: disposal bumps the binding's epoch, so pulses and late
// first runs delivered through an already-discarded handle are ignored
// entirely — including after unmount, even when the engine has not fully
// honored the stop.
func (b *Binding[T]) tracked(ctx context.Context, c Computation, first bool, epoch uint64) error {
	b.mu.Lock()
	if b.epoch != epoch {
		b.mu.Unlock()
		capitan.Emit(ctx, BindingStalePulse)
		return nil
	}

	if first {
		return b.firstRun(ctx, c, epoch)
	}

	// Subsequent run. Decide under the lock, act outside it.
	var action int
	switch {
	case b.mount != MountMounted:
		// Not committed yet: hold the update for post-commit replay.
		// Length-one queue; pulses coalesce.
		b.deferred = true
		action = actDefer
	case b.prevDeps == nil:
		// Absent dependency list: always-recreate semantics. Tear down
		// now; the next render pass builds a fresh computation and the
		// result reflects the latest state without recomputing here.
		action = actTeardown
	default:
		action = actRecompute
	}
	b.mu.Unlock()

	capitan.Emit(ctx, BindingInvalidated)
	if b.metrics != nil {
		b.metrics.OnInvalidation()
	}

	switch action {
	case actDefer:
		capitan.Emit(ctx, BindingDeferred)
		if b.metrics != nil {
			b.metrics.OnDeferred()
		}
	case actTeardown:
		b.dispose(ctx)
		b.requestUpdate()
	case actRecompute:
		stale, err := b.compute(ctx, c, false, epoch, "recompute")
		if err != nil {
			return err
		}
		if stale {
			// Disposed while recomputing, nothing left to notify.
			return nil
		}
		b.requestUpdate()
	}
	return nil
}

// firstRun handles the initial synchronous invocation of a fresh
// computation: attach the handler, transition the mount state, compute
// and cache the initial result. No re-render is requested — the render
// pass that created the computation consumes the cached result directly.
// Called with b.mu held; returns with it released.
func (b *Binding[T]) firstRun(ctx context.Context, c Computation, epoch uint64) error {
	handler := b.handler
	b.mu.Unlock()

	var cleanup CleanupFunc
	if handler != nil {
		cleanup = handler(c)
	}

	b.mu.Lock()
	if b.epoch != epoch {
		// Disposed while the handler ran. The computation is already
		// being torn down elsewhere; the fresh cleanup has no home, run
		// it now so its resources are not orphaned.
		b.mu.Unlock()
		if cleanup != nil {
			if err := cleanup(); err != nil {
				b.recordFailure(ctx, "cleanup", err)
			}
		}
		return nil
	}
	b.cleanup = cleanup
	var transitioned bool
	if b.mount == MountUnknown {
		b.mount = MountPending
		transitioned = true
	}
	b.mu.Unlock()

	if transitioned {
		b.mountChanged(ctx, MountUnknown, MountPending)
	}
	_, err := b.compute(ctx, c, true, epoch, "first-run")
	return err
}
