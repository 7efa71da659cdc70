package tether

import "time"

// MetricsProvider allows integration with metrics systems like
// Prometheus, StatsD, etc. Implement this interface to receive callbacks
// on key binding events.
type MetricsProvider interface {
	// OnMountChange is called when the binding transitions between
	// mount states.
	OnMountChange(from, to MountState)

	// OnRecomputeSuccess is called when a recomputation completes.
	// Duration is the time taken by the pipeline, reactive function
	// included.
	OnRecomputeSuccess(duration time.Duration)

	// OnRecomputeFailure is called when a recomputation fails.
	// Op indicates where: "first-run", "recompute", or "replay".
	OnRecomputeFailure(op string, duration time.Duration)

	// OnInvalidation is called when an invalidation pulse re-enters the
	// tracked callback after the first run.
	OnInvalidation()

	// OnDeferred is called when an update is held because the component
	// has not yet mounted.
	OnDeferred()

	// OnReplay is called when a deferred update is replayed after
	// commit.
	OnReplay()

	// OnRecreate is called when the recreation gate tears down and
	// recreates the computation.
	OnRecreate()

	// OnGuardExpired is called when the leak guard disposes a
	// computation whose render never committed.
	OnGuardExpired()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Embed it to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnMountChange(_, _ MountState)              {}
func (NoOpMetricsProvider) OnRecomputeSuccess(_ time.Duration)         {}
func (NoOpMetricsProvider) OnRecomputeFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnInvalidation()                            {}
func (NoOpMetricsProvider) OnDeferred()                                {}
func (NoOpMetricsProvider) OnReplay()                                  {}
func (NoOpMetricsProvider) OnRecreate()                                {}
func (NoOpMetricsProvider) OnGuardExpired()                            {}
