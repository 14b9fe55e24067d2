package syncer

import (
	"context"
	"errors"
	"testing"
)

type item struct {
	ID      int64
	Keyword string
}

func TestCollection_ApplyAndSnapshotClone(t *testing.T) {
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		return []item{{ID: 1, Keyword: "AI agent"}, {ID: 2, Keyword: "golang"}}, nil
	})

	if err := c.refresh(context.Background(), 1); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	snap := c.Snapshot()
	if !snap.HasData || len(snap.Items) != 2 {
		t.Fatalf("snapshot = %#v, want 2 items", snap)
	}
	if snap.Err != nil || snap.Failures != 0 {
		t.Fatalf("snapshot err = %v failures = %d, want clean", snap.Err, snap.Failures)
	}

	// Mutating the returned snapshot must not leak into the store.
	snap.Items[0].ID = 999
	if again := c.Snapshot(); again.Items[0].ID != 1 {
		t.Fatalf("Snapshot not cloned: id = %d, want 1", again.Items[0].ID)
	}
}

func TestCollection_FetchFailureKeepsPreviousItems(t *testing.T) {
	var fail bool
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []item{{ID: 1}}, nil
	})

	_ = c.refresh(context.Background(), 1)
	fail = true
	if err := c.refresh(context.Background(), 2); err == nil {
		t.Fatal("refresh returned nil error for failing fetch")
	}

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("items after failure = %#v, want previous data kept", snap.Items)
	}
	if snap.Err == nil || snap.Failures != 1 {
		t.Fatalf("err = %v failures = %d, want recorded failure", snap.Err, snap.Failures)
	}
	if snap.Stale() {
		t.Error("Stale() = true after one failure, want false")
	}

	_ = c.refresh(context.Background(), 3)
	if snap := c.Snapshot(); !snap.Stale() {
		t.Error("Stale() = false after two consecutive failures, want true")
	}

	// A success resets the failure streak.
	fail = false
	_ = c.refresh(context.Background(), 4)
	snap = c.Snapshot()
	if snap.Failures != 0 || snap.Err != nil || snap.Stale() {
		t.Fatalf("snapshot after recovery = %#v, want clean", snap)
	}
}

func TestCollection_UpdatedAtTracksDataNotAttempts(t *testing.T) {
	var fail bool
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []item{{ID: 1}}, nil
	})

	_ = c.refresh(context.Background(), 1)
	applied := c.Snapshot().UpdatedAt
	if applied.IsZero() {
		t.Fatal("UpdatedAt zero after successful fetch")
	}

	// Failed attempts must not move the timestamp: the stale banner shows
	// how old the displayed data is, not when the last retry happened.
	fail = true
	_ = c.refresh(context.Background(), 2)
	_ = c.refresh(context.Background(), 3)
	if got := c.Snapshot().UpdatedAt; !got.Equal(applied) {
		t.Fatalf("UpdatedAt = %v after failures, want unchanged %v", got, applied)
	}

	fail = false
	_ = c.refresh(context.Background(), 4)
	if got := c.Snapshot().UpdatedAt; !got.After(applied) && !got.Equal(applied) {
		t.Fatalf("UpdatedAt = %v after recovery, want advanced", got)
	}
}

func TestCollection_StaleSequenceDiscarded(t *testing.T) {
	c := NewCollection[item]("queue", nil)

	c.apply(5, []item{{ID: 5}}, nil)
	// A slow response from an earlier tick arrives late.
	c.apply(3, []item{{ID: 3}}, nil)

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 5 {
		t.Fatalf("items = %#v, want newer result (id 5) preserved", snap.Items)
	}

	// A late error from an earlier tick must not taint a newer success.
	c.apply(4, nil, errors.New("slow failure"))
	if snap := c.Snapshot(); snap.Err != nil || snap.Failures != 0 {
		t.Fatalf("late stale error applied: %#v", snap)
	}
}

func TestCollection_RefreshAfterTeardownDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		// Simulate the page being torn down while the request is in flight.
		cancel()
		return []item{{ID: 42}}, nil
	})

	if err := c.refresh(ctx, 1); err == nil {
		t.Fatal("refresh after cancel returned nil error")
	}
	if snap := c.Snapshot(); snap.HasData {
		t.Fatalf("response applied after teardown: %#v", snap)
	}
}

func TestValue_ReplacedWholesaleAndKeptOnError(t *testing.T) {
	type status struct {
		Version string
		Queue   int
	}

	var fail bool
	v := NewValue("status", func(ctx context.Context) (status, error) {
		if fail {
			return status{}, errors.New("network error")
		}
		return status{Version: "1.0.0", Queue: 4}, nil
	})

	_ = v.refresh(context.Background(), 1)
	snap := v.Snapshot()
	if !snap.HasValue || snap.Value.Queue != 4 {
		t.Fatalf("snapshot = %#v, want fetched status", snap)
	}

	// A failed status fetch keeps the previously displayed values rather
	// than clearing to zero.
	fail = true
	_ = v.refresh(context.Background(), 2)
	snap = v.Snapshot()
	if !snap.HasValue || snap.Value.Version != "1.0.0" || snap.Value.Queue != 4 {
		t.Fatalf("snapshot after failure = %#v, want previous values kept", snap)
	}
	if snap.Err == nil || snap.Failures != 1 {
		t.Fatalf("err = %v failures = %d, want recorded failure", snap.Err, snap.Failures)
	}
}
