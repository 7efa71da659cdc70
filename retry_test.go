package tether

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	engine := NewManualEngine()

	var attempts atomic.Int64
	b := Bind[int](engine, func(_ context.Context, _ Computation) (int, error) {
		if attempts.Add(1) < 3 {
			return 0, errors.New("transient")
		}
		return 7, nil
	}, WithRetry[int](3))
	defer b.Unmount()

	v, err := b.Render(context.Background(), []any{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestWithRetry_ExhaustedAttemptsFail(t *testing.T) {
	engine := NewManualEngine()

	wantErr := errors.New("permanent")
	var attempts atomic.Int64
	b := Bind[int](engine, func(_ context.Context, _ Computation) (int, error) {
		attempts.Add(1)
		return 0, wantErr
	}, WithRetry[int](2))
	defer b.Unmount()

	if _, err := b.Render(context.Background(), []any{}); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts.Load())
	}
	if _, ok := b.Current(); ok {
		t.Error("expected no cached value after failure")
	}
}

func TestWithBackoff_RetriesWithDelay(t *testing.T) {
	engine := NewManualEngine()

	var attempts atomic.Int64
	b := Bind[int](engine, func(_ context.Context, _ Computation) (int, error) {
		if attempts.Add(1) < 2 {
			return 0, errors.New("transient")
		}
		return 5, nil
	}, WithBackoff[int](3, time.Millisecond))
	defer b.Unmount()

	v, err := b.Render(context.Background(), []any{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if v != 5 {
		t.Errorf("expected 5, got %d", v)
	}
}
