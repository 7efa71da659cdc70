package tether

import "github.com/zoobzio/capitan"

// Binding lifecycle signals.
var (
	// BindingBound is emitted when a Binding is constructed.
	BindingBound = capitan.NewSignal(
		"tether.binding.bound",
		"Binding constructed",
	)

	// BindingRecreated is emitted when the recreation gate disposes the
	// current computation and creates a fresh one.
	BindingRecreated = capitan.NewSignal(
		"tether.binding.recreated",
		"Computation disposed and recreated",
	)

	// BindingFirstRun is emitted when a computation's first run caches
	// its initial result.
	BindingFirstRun = capitan.NewSignal(
		"tether.binding.first_run",
		"First run cached initial result",
	)

	// BindingCommitted is emitted when the first commit finalizes the
	// mounted state.
	BindingCommitted = capitan.NewSignal(
		"tether.binding.committed",
		"First commit landed",
	)

	// BindingUnmounted is emitted when the host unmounts the component.
	BindingUnmounted = capitan.NewSignal(
		"tether.binding.unmounted",
		"Component unmounted",
	)

	// BindingDisposed is emitted whenever disposal actually tears
	// something down (cleanup invoked or computation stopped).
	BindingDisposed = capitan.NewSignal(
		"tether.binding.disposed",
		"Computation torn down",
	)

	// BindingMountChanged is emitted on every mount state transition.
	BindingMountChanged = capitan.NewSignal(
		"tether.binding.mount.changed",
		"Mount state transition",
	)
)

// Invalidation handling signals.
var (
	// BindingInvalidated is emitted when an invalidation pulse re-enters
	// the tracked callback after the first run.
	BindingInvalidated = capitan.NewSignal(
		"tether.binding.invalidated",
		"Invalidation pulse received",
	)

	// BindingDeferred is emitted when an invalidation arrives before the
	// component has mounted and is held for replay.
	BindingDeferred = capitan.NewSignal(
		"tether.binding.deferred",
		"Update deferred until mount",
	)

	// BindingReplayed is emitted when a deferred update is replayed
	// during post-commit reconciliation.
	BindingReplayed = capitan.NewSignal(
		"tether.binding.replayed",
		"Deferred update replayed",
	)

	// BindingStalePulse is emitted when a pulse arrives through a handle
	// that is no longer the binding's current computation. The pulse is
	// ignored.
	BindingStalePulse = capitan.NewSignal(
		"tether.binding.pulse.stale",
		"Pulse through stale handle ignored",
	)
)

// Leak guard signals.
var (
	// BindingGuardScheduled is emitted when a leak-guard timer is armed
	// for a computation created before first commit.
	BindingGuardScheduled = capitan.NewSignal(
		"tether.binding.guard.scheduled",
		"Leak-guard timer armed",
	)

	// BindingGuardExpired is emitted when the leak guard fires and
	// disposes a computation whose render never committed.
	BindingGuardExpired = capitan.NewSignal(
		"tether.binding.guard.expired",
		"Leak guard disposed uncommitted computation",
	)
)

// Failure and diagnostic signals.
var (
	// BindingRecomputeFailed is emitted when the reactive function or
	// its pipeline returns an error.
	BindingRecomputeFailed = capitan.NewSignal(
		"tether.binding.recompute.failed",
		"Recomputation failed",
	)

	// BindingCleanupFailed is emitted when a handler-returned cleanup
	// returns an error during disposal. The computation is still
	// stopped.
	BindingCleanupFailed = capitan.NewSignal(
		"tether.binding.cleanup.failed",
		"Cleanup failed during disposal",
	)

	// BindingNonReactiveValue is an advisory development-mode warning
	// emitted when the cached result is, or directly contains, a value
	// matched by the configured WarnValue predicate. Such values are not
	// kept reactive; the caller likely wants a materialized snapshot.
	BindingNonReactiveValue = capitan.NewSignal(
		"tether.binding.value.nonreactive",
		"Result holds a non-reactive live handle",
	)
)
