package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
)

// Scheduler watches the three cadence boundaries on a recurring tick and
// emits each cadence on Due exactly once per boundary crossing. The
// consumer performs the reset and must call Ack, after which the next
// boundary is armed.
type Scheduler struct {
	now      func() time.Time
	interval time.Duration

	mu      sync.Mutex
	targets map[quest.Cadence]time.Time
	pending map[quest.Cadence]bool

	due chan quest.Cadence
}

// NewScheduler builds a scheduler ticking at the given interval
// (callers use roughly one second). now must not be nil.
func NewScheduler(now func() time.Time, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	s := &Scheduler{
		now:      now,
		interval: interval,
		targets:  make(map[quest.Cadence]time.Time, 3),
		pending:  make(map[quest.Cadence]bool, 3),
		due:      make(chan quest.Cadence, 3),
	}
	t := now()
	for _, c := range []quest.Cadence{quest.Daily, quest.Weekly, quest.Monthly} {
		s.targets[c] = NextReset(c, t)
	}
	return s
}

// Due delivers cadences whose boundary has passed. Each cadence is
// delivered at most once until Ack re-arms it.
func (s *Scheduler) Due() <-chan quest.Cadence {
	return s.due
}

// Ack acknowledges a delivered reset and arms the next boundary for the
// cadence.
func (s *Scheduler) Ack(c quest.Cadence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[c] = false
	s.targets[c] = NextReset(c, s.now())
}

// Run ticks until the context is cancelled. The ticker is always
// stopped on return; there is nothing else to tear down.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check()
		}
	}
}

// Tick forces a single boundary check. Exposed for tests and for
// callers that drive their own loop.
func (s *Scheduler) Tick() {
	s.check()
}

func (s *Scheduler) check() {
	now := s.now()

	s.mu.Lock()
	var fire []quest.Cadence
	for c, target := range s.targets {
		if s.pending[c] || now.Before(target) {
			continue
		}
		s.pending[c] = true
		fire = append(fire, c)
	}
	s.mu.Unlock()

	// The channel buffer holds one slot per cadence and each cadence is
	// in flight at most once, so these sends never block.
	for _, c := range fire {
		s.due <- c
	}
}
