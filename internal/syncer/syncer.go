package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultInterval = 5 * time.Second

// Member is a named mirror a Synchronizer keeps fresh. Collection and
// Value are the only implementations.
type Member interface {
	Name() string
	refresh(ctx context.Context, seq uint64) error
}

// Synchronizer owns the polling lifecycle for one page. Start arms a single
// repeating timer that refreshes every member; Stop disarms it. Each member
// is fetched independently per tick, so one failing collection never
// disturbs the others' refresh.
type Synchronizer struct {
	name     string
	interval time.Duration
	log      *logrus.Logger
	members  []Member
	seq      atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Synchronizer over the given members. A non-positive interval
// falls back to the 5 second default.
func New(name string, interval time.Duration, log *logrus.Logger, members ...Member) *Synchronizer {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = logrus.New()
	}
	return &Synchronizer{name: name, interval: interval, log: log, members: members}
}

// Running reports whether the polling timer is armed.
func (s *Synchronizer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Start refreshes every member immediately, then arms the repeating timer.
// Calling Start on a running synchronizer is a no-op; re-entering a page
// after Stop creates a fresh timer, never a stacked one.
func (s *Synchronizer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			s.refreshAll(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop disarms the timer. In-flight responses arriving afterwards are
// discarded instead of being applied to a page that no longer exists.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// refreshAll fires one fetch per member. Completion order across members is
// deliberately undefined; each applies its own result independently.
func (s *Synchronizer) refreshAll(ctx context.Context) {
	for _, m := range s.members {
		m := m
		seq := s.seq.Add(1)
		go func() {
			if err := m.refresh(ctx, seq); err != nil {
				s.log.WithFields(logrus.Fields{
					"page":       s.name,
					"collection": m.Name(),
					"seq":        seq,
				}).WithError(err).Warn("refresh failed")
			}
		}()
	}
}

// Refresh performs an immediate out-of-band fetch of the given members,
// bypassing the timer. Used to reconcile after a mutation; racing with the
// next scheduled tick is harmless since applies are sequence-stamped.
func (s *Synchronizer) Refresh(ctx context.Context, members ...Member) {
	for _, m := range members {
		seq := s.seq.Add(1)
		if err := m.refresh(ctx, seq); err != nil {
			s.log.WithFields(logrus.Fields{
				"page":       s.name,
				"collection": m.Name(),
				"seq":        seq,
			}).WithError(err).Warn("reconcile refresh failed")
		}
	}
}
