package tether_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/zoobzio/tether"
)

// This example walks a component instance through its full lifecycle:
// first render, commit, a reactive invalidation, and unmount.
func Example() {
	ctx := context.Background()
	engine := tether.NewManualEngine()

	// The reactive source: a counter the component displays.
	var counter atomic.Int64
	counter.Store(1)

	var comp tether.Computation
	binding := tether.Bind(engine, func(_ context.Context, _ tether.Computation) (int, error) {
		return int(counter.Load()), nil
	}).
		Handler(func(c tether.Computation) tether.CleanupFunc {
			comp = c
			return nil
		}).
		OnUpdate(func() {
			fmt.Println("re-render requested")
		})

	// First render: the value is computed synchronously.
	v, _ := binding.Render(ctx, []any{})
	fmt.Println("first paint:", v)

	// The host commits the render.
	_ = binding.Commit(ctx)

	// The source changes; the engine pulses the computation.
	counter.Store(2)
	comp.(*tether.ManualComputation).Invalidate()

	v, _ = binding.Render(ctx, []any{})
	fmt.Println("after update:", v)

	binding.Unmount()

	// Output:
	// first paint: 1
	// re-render requested
	// after update: 2
}

// This example shows the server rendering path: with an inactive engine
// the reactive function runs exactly once with no computation handle.
func ExampleEngine_inactive() {
	ctx := context.Background()
	engine := tether.NewManualEngine()
	engine.SetActive(false)

	binding := tether.Bind(engine, func(_ context.Context, c tether.Computation) (string, error) {
		if c == nil {
			return "static", nil
		}
		return "reactive", nil
	})

	v, _ := binding.Render(ctx, nil)
	fmt.Println(v)

	// Output:
	// static
}
