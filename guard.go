package tether

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// guardTimer is one armed leak guard: a cancellable scheduled disposal
// on the binding's clock. Cancelled exactly once, by the first commit or
// by disposal, whichever comes first.
type guardTimer struct {
	timer clockz.Timer
	done  chan struct{}
	once  sync.Once
}

func (g *guardTimer) cancel() {
	g.once.Do(func() {
		g.timer.Stop()
		close(g.done)
	})
}

// armGuard schedules disposal of the computation created under epoch if
// the component has still not committed when the guard delay elapses.
// Bounds the lifetime of computations created by renders that never
// reach commit (aborted speculative passes, discarded trees).
func (b *Binding[T]) armGuard(ctx context.Context, epoch uint64) {
	g := &guardTimer{
		timer: b.clock.NewTimer(b.guardDelay),
		done:  make(chan struct{}),
	}

	b.mu.Lock()
	old := b.guard
	b.guard = g
	b.mu.Unlock()
	if old != nil {
		old.cancel()
	}

	capitan.Emit(ctx, BindingGuardScheduled,
		KeyGuardDelay.Field(b.guardDelay),
	)

	go func() {
		select {
		case <-g.timer.C():
		case <-g.done:
			return
		}

		b.mu.Lock()
		if b.guard == g {
			b.guard = nil
		}
		expired := b.epoch == epoch && b.mount != MountMounted
		b.mu.Unlock()
		if !expired {
			return
		}

		capitan.Emit(ctx, BindingGuardExpired,
			KeyGuardDelay.Field(b.guardDelay),
		)
		if b.metrics != nil {
			b.metrics.OnGuardExpired()
		}
		b.dispose(ctx)
	}()
}
