package tether

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// sourceFn builds a reactive function reading from an atomic source,
// standing in for a reactive store query.
func sourceFn(src *atomic.Int64) func(context.Context, Computation) (int, error) {
	return func(context.Context, Computation) (int, error) {
		return int(src.Load()), nil
	}
}

func constFn(v int) func(context.Context, Computation) (int, error) {
	return func(context.Context, Computation) (int, error) {
		return v, nil
	}
}

func TestBind_NilEnginePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil engine")
		}
	}()
	Bind[int](nil, constFn(1))
}

func TestBind_NilFnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil reactive function")
		}
	}()
	Bind[int](NewManualEngine(), nil)
}

func TestBinding_SynchronousFirstPaint(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()

	var updates atomic.Int32
	b := Bind(engine, constFn(42)).
		OnUpdate(func() { updates.Add(1) })

	v, err := b.Render(ctx, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42 on first render, got %d", v)
	}
	if updates.Load() != 0 {
		t.Errorf("expected no re-render request on first run, got %d", updates.Load())
	}
	if engine.Creates() != 1 {
		t.Errorf("expected 1 computation, got %d", engine.Creates())
	}

	cur, ok := b.Current()
	if !ok || cur != 42 {
		t.Errorf("expected cached 42, got %d (ok=%v)", cur, ok)
	}
	if b.Mount() != MountPending {
		t.Errorf("expected pending before commit, got %s", b.Mount())
	}
}

func TestBinding_DepsIdentityRecreation(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	b := Bind(engine, constFn(1))

	if _, err := b.Render(ctx, []any{"a"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if engine.Creates() != 1 {
		t.Fatalf("expected 1 create after first render, got %d", engine.Creates())
	}

	// Same identity: no recreation.
	if _, err := b.Render(ctx, []any{"a"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if engine.Creates() != 1 || engine.Stops() != 0 {
		t.Errorf("expected no recreation on identical deps, got creates=%d stops=%d",
			engine.Creates(), engine.Stops())
	}

	// Different identity: disposed and recreated exactly once.
	if _, err := b.Render(ctx, []any{"b"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if engine.Creates() != 2 {
		t.Errorf("expected 2 creates after deps change, got %d", engine.Creates())
	}
	if engine.Stops() != 1 {
		t.Errorf("expected 1 stop after deps change, got %d", engine.Stops())
	}
}

func TestBinding_NilDepsAlwaysRecreates(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	b := Bind(engine, constFn(1))

	for i := 1; i <= 3; i++ {
		if _, err := b.Render(ctx, nil); err != nil {
			t.Fatalf("Render %d failed: %v", i, err)
		}
		if engine.Creates() != i {
			t.Errorf("render %d: expected %d creates, got %d", i, i, engine.Creates())
		}
		if engine.Stops() != i-1 {
			t.Errorf("render %d: expected %d stops, got %d", i, i-1, engine.Stops())
		}
	}
}

func TestBinding_EmptyDepsNeverRecreate(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	b := Bind(engine, constFn(1))

	for i := 0; i < 3; i++ {
		if _, err := b.Render(ctx, []any{}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if engine.Creates() != 1 {
		t.Errorf("expected a single computation across renders, got %d", engine.Creates())
	}
}

func TestBinding_InactiveEngineRunsOnceWithNilHandle(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	engine.SetActive(false)

	var runs atomic.Int32
	var sawHandle atomic.Bool
	b := Bind(engine, func(_ context.Context, c Computation) (int, error) {
		runs.Add(1)
		if c != nil {
			sawHandle.Store(true)
		}
		return 7, nil
	})

	v, err := b.Render(ctx, []any{"k"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
	if runs.Load() != 1 {
		t.Errorf("expected exactly one run, got %d", runs.Load())
	}
	if sawHandle.Load() {
		t.Error("expected nil computation handle in inactive environment")
	}
	if engine.Creates() != 0 {
		t.Errorf("expected no computation created, got %d", engine.Creates())
	}

	// Identical deps: no rerun.
	if _, err := b.Render(ctx, []any{"k"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if runs.Load() != 1 {
		t.Errorf("expected still one run, got %d", runs.Load())
	}
}

func TestBinding_IsolatedCreation(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()

	var comp Computation
	b := Bind(engine, constFn(1)).
		Handler(func(c Computation) CleanupFunc {
			comp = c
			return nil
		})

	if _, err := b.Render(ctx, []any{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if engine.Isolations() != 1 {
		t.Errorf("expected 1 isolation, got %d", engine.Isolations())
	}
	mc, ok := comp.(*ManualComputation)
	if !ok {
		t.Fatal("expected handler to receive the manual computation")
	}
	if !mc.Isolated() {
		t.Error("expected computation created inside Isolate")
	}
}

func TestBinding_FirstRunErrorPropagates(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	boom := errors.New("query failed")

	b := Bind(engine, func(context.Context, Computation) (int, error) {
		return 0, boom
	})

	_, err := b.Render(ctx, []any{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
	if b.LastError() == nil {
		t.Error("expected LastError recorded")
	}
	if _, ok := b.Current(); ok {
		t.Error("expected no cached result after failed first run")
	}
}

func TestBinding_LastErrorClearedOnSuccess(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	var fail atomic.Bool
	fail.Store(true)

	b := Bind(engine, func(context.Context, Computation) (int, error) {
		if fail.Load() {
			return 0, errors.New("transient")
		}
		return 3, nil
	})

	if _, err := b.Render(ctx, nil); err == nil {
		t.Fatal("expected first render to fail")
	}
	fail.Store(false)

	// Nil deps recreate on every render; the retry succeeds.
	v, err := b.Render(ctx, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
	if b.LastError() != nil {
		t.Errorf("expected LastError cleared, got %v", b.LastError())
	}
}

func TestBinding_CommitTransitionsMount(t *testing.T) {
	ctx := context.Background()
	engine := NewManualEngine()
	b := Bind(engine, constFn(1))

	if _, err := b.Render(ctx, []any{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := b.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if b.Mount() != MountMounted {
		t.Errorf("expected mounted after commit, got %s", b.Mount())
	}

	// Mounted never reverts, commits stay idempotent.
	if err := b.Commit(ctx); err != nil {
		t.Fatalf("second Commit failed: %v", err)
	}
	if b.Mount() != MountMounted {
		t.Errorf("expected mounted to persist, got %s", b.Mount())
	}
	if engine.Creates() != 1 {
		t.Errorf("expected no extra computation from repeat commits, got %d", engine.Creates())
	}
}
