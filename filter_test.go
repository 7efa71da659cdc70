package tether

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestWithFilter_SkipsRecomputeKeepsCache(t *testing.T) {
	engine := NewManualEngine()
	source := &atomic.Int64{}
	source.Store(1)

	allow := &atomic.Bool{}
	allow.Store(true)

	var comp *ManualComputation
	b := Bind[int](engine, sourceFn(source),
		WithFilter[int](func(f *Frame[int]) bool {
			return f.FirstRun || allow.Load()
		})).
		Handler(func(c Computation) CleanupFunc {
			comp = c.(*ManualComputation)
			return nil
		})
	defer b.Unmount()

	ctx := context.Background()
	if _, err := b.Render(ctx, []any{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := b.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Blocked: pulse passes through without running the function.
	allow.Store(false)
	source.Store(2)
	comp.Invalidate()

	if v, _ := b.Current(); v != 1 {
		t.Errorf("expected cached 1 while filtered, got %d", v)
	}

	// Unblocked: the next pulse recomputes.
	allow.Store(true)
	comp.Invalidate()

	if v, _ := b.Current(); v != 2 {
		t.Errorf("expected 2 after filter opened, got %d", v)
	}
}
