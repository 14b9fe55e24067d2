package syncer

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSynchronizer_ImmediateFetchThenTicks(t *testing.T) {
	var fetches atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return []item{{ID: 1}}, nil
	})

	s := New("dashboard", 30*time.Millisecond, quietLogger(), c)
	s.Start(context.Background())
	defer s.Stop()

	// One fetch fires immediately, before the first tick.
	deadline := time.Now().Add(time.Second)
	for fetches.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if fetches.Load() == 0 {
		t.Fatal("no immediate fetch on Start")
	}

	time.Sleep(120 * time.Millisecond)
	if fetches.Load() < 3 {
		t.Fatalf("fetches = %d, want repeated fetches from ticker", fetches.Load())
	}
}

func TestSynchronizer_FailureIsolationAcrossCollections(t *testing.T) {
	var healthyFetches atomic.Int64
	failing := NewCollection("status", func(ctx context.Context) ([]item, error) {
		return nil, errors.New("connection refused")
	})
	healthy := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		healthyFetches.Add(1)
		return []item{{ID: 1}}, nil
	})

	s := New("dashboard", 30*time.Millisecond, quietLogger(), failing, healthy)
	s.Start(context.Background())
	defer s.Stop()

	// The failing collection must not disrupt the other's scheduled ticks.
	time.Sleep(150 * time.Millisecond)
	if healthyFetches.Load() < 3 {
		t.Fatalf("healthy collection fetched %d times, want ticks to continue", healthyFetches.Load())
	}

	if snap := healthy.Snapshot(); snap.Err != nil || !snap.HasData {
		t.Fatalf("healthy snapshot = %#v, want clean data", snap)
	}
	if snap := failing.Snapshot(); snap.Err == nil || snap.Failures < 2 {
		t.Fatalf("failing snapshot = %#v, want accumulated failures", snap)
	}
}

func TestSynchronizer_StopDisarmsTimer(t *testing.T) {
	var fetches atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return nil, nil
	})

	s := New("queue", 20*time.Millisecond, quietLogger(), c)
	s.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	if s.Running() {
		t.Fatal("Running() = true after Stop")
	}
	settled := fetches.Load()
	time.Sleep(80 * time.Millisecond)
	if fetches.Load() != settled {
		t.Fatalf("fetches advanced from %d to %d after Stop; timer outlived page", settled, fetches.Load())
	}
}

func TestSynchronizer_RestartCreatesFreshTimerNotStacked(t *testing.T) {
	var fetches atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return nil, nil
	})

	s := New("queue", 40*time.Millisecond, quietLogger(), c)
	ctx := context.Background()

	s.Start(ctx)
	s.Start(ctx) // second Start on a running synchronizer is a no-op
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	count := fetches.Load()
	// 100ms at a 40ms cadence: immediate fetch plus two ticks. A stacked
	// timer would roughly double this.
	if count > 4 {
		t.Fatalf("fetches = %d, want no stacked timers", count)
	}

	s.Start(ctx)
	defer s.Stop()
	deadline := time.Now().Add(time.Second)
	for fetches.Load() == count && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if fetches.Load() == count {
		t.Fatal("no fetch after re-entering the page")
	}
}

func TestSynchronizer_RefreshBypassesTimer(t *testing.T) {
	var fetches atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return []item{{ID: 1}}, nil
	})

	s := New("queue", time.Hour, quietLogger(), c)
	s.Refresh(context.Background(), c)

	if fetches.Load() != 1 {
		t.Fatalf("fetches = %d, want exactly one forced fetch", fetches.Load())
	}
	if snap := c.Snapshot(); !snap.HasData {
		t.Fatalf("snapshot = %#v, want forced refresh applied", snap)
	}
}
