/*
Package tether binds a push-based reactive computation engine to the
imperative lifecycle of a declarative UI component.

A reactive engine re-runs registered computations whenever data they read
changes. A UI runtime renders, commits, and unmounts components on its own
schedule. tether sits between the two: it keeps a component's displayed
value in sync with a reactive source while rendering synchronously on
first paint, never leaking a computation past the component's lifetime,
and never publishing an update for a component that is no longer mounted.

# Binding

The core type is Binding, one per component instance. The host runtime
drives it through three entry points:

	Render  → called during each render pass; recreates the computation
	          when the dependency list's identity changes and returns the
	          cached result
	Commit  → called after each commit; finalizes mounting, cancels the
	          leak guard, and replays any update deferred before mount
	Unmount → called when the instance goes away; disposes exactly once

The reactive engine drives it through a fourth: every invalidation of the
underlying computation re-enters the binding's tracked callback, which
either recomputes and requests a re-render, defers the update until the
component mounts, or tears down so the next render recovers.

# Basic Usage

	b := tether.Bind(engine, func(ctx context.Context, c tether.Computation) ([]Doc, error) {
	    return store.Find(query), nil
	}).OnUpdate(component.Invalidate)

	// render pass
	docs, err := b.Render(ctx, []any{query.ID})

	// after commit
	b.Commit(ctx)

	// teardown
	b.Unmount()

# Dependency Identity

The deps slice passed to Render is compared element-wise by identity
against the previous render's slice. A change disposes the current
computation and creates a fresh one. A nil slice means "recreate on every
render"; an empty non-nil slice means "never recreate after the first".
Keys must be comparable.

# Leak Guard

A computation created during a render that never commits (an aborted
speculative render, a discarded concurrent pass) must not live forever.
Until the first commit lands, every creation arms a cancellable timer on
the injected clock; if commit has not happened by expiry the computation
is disposed. Use clockz.FakeClock to drive the guard deterministically in
tests.

# Pipeline

Every recomputation flows through a pipz pipeline whose terminal applies
the reactive function. Options add middleware around it:

	b := tether.Bind(engine, fn,
	    tether.WithMiddleware(
	        tether.UseEffect[Doc]("audit", auditFn),
	    ),
	)

Resilience options wrap the same pipeline: WithRetry and WithBackoff
re-run a failed recompute, WithTimeout bounds its duration,
WithFallback substitutes a processor on failure, WithCircuitBreaker
fails fast under repeated failure, WithRateLimit paces a chatty
engine, and WithFilter gates recomputation on a predicate.

# Engines

Any source implementing the Engine interface can drive a binding.
ManualEngine pulses computations by hand and is intended for tests.
FileEngine watches a file and pulses its computations on every write,
giving file-backed data a change source without a reactive runtime.

# Observability

tether emits capitan signals for every lifecycle transition (first run,
invalidation, deferral, replay, recreation, guard expiry, commit,
unmount, disposal) and for development-mode advisory warnings. Attach
hooks to route them to logs or metrics:

	capitan.Hook(tether.BindingGuardExpired, func(_ context.Context, e *capitan.Event) {
	    log.Println("computation leaked past render, disposed")
	})

The MetricsProvider interface offers the same events as direct callbacks
for metrics systems.

# Environments

An Engine reporting Active() == false (static or server rendering) causes
Render to run the reactive function exactly once with a nil Computation
and create nothing; invalidations never occur in such an environment.
*/
package tether
