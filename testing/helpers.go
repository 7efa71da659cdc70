// Package testing provides test utilities and helpers for tether binding testing.
package testing

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/tether"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForMount waits until the binding reaches the expected mount state
// or timeout occurs.
func WaitForMount[T any](t *testing.T, b *tether.Binding[T], expected tether.MountState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return b.Mount() == expected
	})
}

// RequireMount fails the test immediately if the binding is not in the
// expected mount state.
func RequireMount[T any](t *testing.T, b *tether.Binding[T], expected tether.MountState) {
	t.Helper()
	if got := b.Mount(); got != expected {
		t.Fatalf("expected mount state %s, got %s", expected, got)
	}
}

// RequireCurrent fails the test if Current() returns false or the cached
// value doesn't pass the check.
func RequireCurrent[T any](t *testing.T, b *tether.Binding[T], check func(T) bool) {
	t.Helper()
	v, ok := b.Current()
	if !ok {
		t.Fatal("expected cached value to be present, got none")
	}
	if !check(v) {
		t.Fatalf("value check failed: %+v", v)
	}
}

// TestHarness bundles a binding over a manual engine with counters for
// the callbacks a host would normally own.
type TestHarness struct {
	Binding *tether.Binding[int]
	Engine  *tether.ManualEngine
	Source  *atomic.Int64
	Updates *atomic.Int64

	handle atomic.Pointer[tether.ManualComputation]
}

// Handle returns the most recent computation handle, or nil before the
// first render.
func (h *TestHarness) Handle() *tether.ManualComputation {
	return h.handle.Load()
}

// Pulse invalidates the current computation handle.
func (h *TestHarness) Pulse(t *testing.T) {
	t.Helper()
	c := h.handle.Load()
	if c == nil {
		t.Fatal("no computation handle yet, render first")
	}
	c.Invalidate()
}

// NewTestHarness creates a binding that reads Source on each recompute
// and counts update requests.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()
	h := &TestHarness{
		Engine:  tether.NewManualEngine(),
		Source:  &atomic.Int64{},
		Updates: &atomic.Int64{},
	}
	h.Binding = tether.Bind[int](h.Engine, func(_ context.Context, _ tether.Computation) (int, error) {
		return int(h.Source.Load()), nil
	}).
		Handler(func(c tether.Computation) tether.CleanupFunc {
			h.handle.Store(c.(*tether.ManualComputation))
			return nil
		}).
		OnUpdate(func() {
			h.Updates.Add(1)
		})
	t.Cleanup(h.Binding.Unmount)
	return h
}
