package sync

import (
	"context"
	"sync"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

// DefaultQuiet is how long mutations must stop before a push fires.
const DefaultQuiet = 2 * time.Second

// Saver coalesces bursts of state changes into one remote push. Every
// Touch restarts the quiet-period timer, so a rapid run of quest
// toggles costs a single write. Nothing is pushed until MarkLoaded is
// called: a push before the initial fetch completes could overwrite the
// remote copy with an empty local state.
type Saver struct {
	remote   RemoteStore
	snapshot func() (store.Dump, error)
	quiet    time.Duration
	onError  func(error)

	mu     sync.Mutex
	timer  *time.Timer
	loaded bool
}

// NewSaver builds a saver that pushes the result of snapshot after each
// quiet period. onError receives push failures; it may be nil.
func NewSaver(remote RemoteStore, snapshot func() (store.Dump, error), quiet time.Duration, onError func(error)) *Saver {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Saver{
		remote:   remote,
		snapshot: snapshot,
		quiet:    quiet,
		onError:  onError,
	}
}

// MarkLoaded arms the saver once the initial remote fetch has been
// applied (or determined absent).
func (s *Saver) MarkLoaded() {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
}

// Touch records that local state changed and (re)starts the quiet
// timer. Calls before MarkLoaded are dropped.
func (s *Saver) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.push)
}

func (s *Saver) push() {
	if err := s.Flush(context.Background()); err != nil {
		s.onError(err)
	}
}

// Flush pushes immediately, cancelling any pending timer. Used on
// shutdown so the tail of a burst is not lost.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		return nil
	}
	dump, err := s.snapshot()
	if err != nil {
		return err
	}
	return s.remote.Push(ctx, dump)
}

// Stop cancels any pending push without flushing.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
