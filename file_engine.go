package tether

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileEngine is an Engine whose computations are invalidated when a
// watched file is written. It bridges file-backed data — configuration,
// content fragments, feature flags — into a binding: the reactive
// function re-reads the file on each run and the component re-renders
// on every write.
//
// FileEngine tracks no read dependencies; every computation it owns is
// pulsed on every write to the watched path.
type FileEngine struct {
	path string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	comps   map[*fileComputation]struct{}
	started bool
	closed  bool
}

// NewFileEngine creates a FileEngine for the given file path. Call
// Start before creating bindings against it.
func NewFileEngine(path string) *FileEngine {
	return &FileEngine{
		path:  path,
		comps: make(map[*fileComputation]struct{}),
	}
}

// Start begins watching the file. It returns an error if the path
// cannot be watched. Start can only be called once.
func (e *FileEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return fmt.Errorf("file engine already started")
	}
	e.started = true
	e.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(e.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch file %s: %w", e.path, err)
	}

	e.mu.Lock()
	e.watcher = watcher
	e.mu.Unlock()

	go e.watch(ctx, watcher)
	return nil
}

// watch pulses every live computation when the file is written.
func (e *FileEngine) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			e.pulse()

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Keep watching despite errors
		}
	}
}

// pulse delivers an invalidation to every registered computation.
func (e *FileEngine) pulse() {
	e.mu.Lock()
	live := make([]*fileComputation, 0, len(e.comps))
	for c := range e.comps {
		live = append(live, c)
	}
	e.mu.Unlock()

	for _, c := range live {
		c.invalidate()
	}
}

// Close stops watching and halts every remaining computation.
func (e *FileEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	watcher := e.watcher
	e.watcher = nil
	e.comps = make(map[*fileComputation]struct{})
	e.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
}

// Active always reports true; a FileEngine is inherently live.
func (e *FileEngine) Active() bool {
	return true
}

// Isolate runs fn directly. File computations have no enclosing-capture
// semantics to escape.
func (e *FileEngine) Isolate(fn func()) {
	fn()
}

// Compute registers fn and runs it synchronously for its first run.
func (e *FileEngine) Compute(fn func(Computation)) Computation {
	c := &fileComputation{
		engine:   e,
		fn:       fn,
		firstRun: true,
	}

	e.mu.Lock()
	if !e.closed {
		e.comps[c] = struct{}{}
	}
	e.mu.Unlock()

	fn(c)
	c.mu.Lock()
	c.firstRun = false
	c.mu.Unlock()
	return c
}

// fileComputation is the handle for a computation owned by a
// FileEngine.
type fileComputation struct {
	engine *FileEngine
	fn     func(Computation)

	mu       sync.Mutex
	firstRun bool
	stopped  bool
}

// FirstRun reports whether the callback is executing its initial run.
func (c *fileComputation) FirstRun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.firstRun
}

// Stop deregisters the computation; later writes no longer pulse it.
// Safe to call more than once.
func (c *fileComputation) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	c.engine.mu.Lock()
	delete(c.engine.comps, c)
	c.engine.mu.Unlock()
}

// invalidate delivers a pulse unless the computation has stopped.
func (c *fileComputation) invalidate() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.fn(c)
}
