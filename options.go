package tether

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Option configures the recomputation pipeline of a Binding. Pipeline
// options wrap the terminal stage (the reactive function) with
// middleware for observation, enrichment, or error handling.
//
// Instance configuration (clock, guard delay, update trigger, etc.) is
// handled via chainable methods on the Binding before the first Render.
type Option[T any] func(pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]]

// buildPipeline wraps a terminal with pipeline options.
func buildPipeline[T any](terminal pipz.Chainable[*Frame[T]], opts []Option[T]) pipz.Chainable[*Frame[T]] {
	pipeline := terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// The reactive function runs first, producing Frame.Current; processors
// then execute in order, observing or adjusting the fresh value before
// it is cached.
//
// Use the Use* functions to create processors for common patterns, or
// provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	tether.Bind(engine, fn,
//	    tether.WithMiddleware(
//	        tether.UseEffect[Doc]("log", logFn),
//	        tether.UseTransform[Doc]("redact", redactFn),
//	    ),
//	)
func WithMiddleware[T any](processors ...pipz.Chainable[*Frame[T]]) Option[T] {
	return func(p pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		all := make([]pipz.Chainable[*Frame[T]], 0, len(processors)+1)
		all = append(all, p)
		all = append(all, processors...)
		return pipz.NewSequence("middleware", all...)
	}
}

// WithErrorHandler adds error observation to the pipeline. Errors from
// the reactive function are passed to the handler for logging, metrics,
// or alerting, but still propagate to the entry point that triggered
// the recomputation. Use this for observability, not recovery.
func WithErrorHandler[T any](handler pipz.Chainable[*pipz.Error[*Frame[T]]]) Option[T] {
	return func(p pipz.Chainable[*Frame[T]]) pipz.Chainable[*Frame[T]] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// UseTransform creates a processor that transforms the frame. Cannot
// fail. Use for pure adjustments that always succeed.
func UseTransform[T any](name string, fn func(context.Context, *Frame[T]) *Frame[T]) pipz.Chainable[*Frame[T]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the frame and fail.
// Use for enrichment or post-processing that may produce errors.
func UseApply[T any](name string, fn func(context.Context, *Frame[T]) (*Frame[T], error)) pipz.Chainable[*Frame[T]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect. The frame
// passes through unchanged. Use for logging, metrics, or notifications
// that should not affect the computed value.
func UseEffect[T any](name string, fn func(context.Context, *Frame[T]) error) pipz.Chainable[*Frame[T]] {
	return pipz.Effect(pipz.Name(name), fn)
}
