package syncer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDo_WriteThenSingleReconcile(t *testing.T) {
	var fetches, writes atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return []item{{ID: 1, Keyword: "AI agent"}}, nil
	})

	s := New("dashboard", time.Hour, quietLogger(), c)
	err := s.Do(context.Background(), Mutation{
		Name: "add keyword",
		Write: func(ctx context.Context) error {
			writes.Add(1)
			return nil
		},
		Reconcile: []Member{c},
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if writes.Load() != 1 {
		t.Fatalf("writes = %d, want exactly one", writes.Load())
	}
	if fetches.Load() != 1 {
		t.Fatalf("reconcile fetches = %d, want exactly one", fetches.Load())
	}
	if snap := c.Snapshot(); !snap.HasData || snap.Items[0].Keyword != "AI agent" {
		t.Fatalf("snapshot = %#v, want backend-confirmed state", snap)
	}
}

func TestDo_ValidationRejectsBeforeAnyNetworkCall(t *testing.T) {
	var fetches, writes atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return nil, nil
	})

	s := New("dashboard", time.Hour, quietLogger(), c)
	wantErr := errors.New("keyword: must not be empty")
	err := s.Do(context.Background(), Mutation{
		Name:     "add keyword",
		Validate: func() error { return wantErr },
		Write: func(ctx context.Context) error {
			writes.Add(1)
			return nil
		},
		Reconcile: []Member{c},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do error = %v, want validation error", err)
	}
	if writes.Load() != 0 || fetches.Load() != 0 {
		t.Fatalf("writes = %d fetches = %d, want no network activity", writes.Load(), fetches.Load())
	}
}

func TestDo_WriteFailureLeavesStateUntouchedNoRetry(t *testing.T) {
	var fetches, writes atomic.Int64
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		fetches.Add(1)
		return []item{{ID: 1}}, nil
	})
	// Seed prior state.
	_ = c.refresh(context.Background(), 1)
	before := c.Snapshot()

	s := New("dashboard", time.Hour, quietLogger(), c)
	wantErr := errors.New("backend returned 503")
	err := s.Do(context.Background(), Mutation{
		Name: "remove item",
		Write: func(ctx context.Context) error {
			writes.Add(1)
			return wantErr
		},
		Reconcile: []Member{c},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do error = %v, want write error surfaced", err)
	}
	if writes.Load() != 1 {
		t.Fatalf("writes = %d, want one attempt and no retry", writes.Load())
	}
	if fetches.Load() != 1 {
		t.Fatalf("fetches = %d, want no reconcile after failed write", fetches.Load())
	}
	after := c.Snapshot()
	if len(after.Items) != len(before.Items) || after.Items[0].ID != before.Items[0].ID {
		t.Fatalf("state changed on failed write: %#v -> %#v", before.Items, after.Items)
	}
}

func TestDo_ReconcileReflectsBackendState(t *testing.T) {
	// Start on a pending item: the reconcile fetch, not the mutation
	// response, decides what the view shows next.
	backendStatus := "pending"
	c := NewCollection("queue", func(ctx context.Context) ([]item, error) {
		return []item{{ID: 1, Keyword: backendStatus}}, nil
	})
	_ = c.refresh(context.Background(), 1)

	s := New("queue", time.Hour, quietLogger(), c)
	err := s.Do(context.Background(), Mutation{
		Name: "start scrape",
		Write: func(ctx context.Context) error {
			backendStatus = "running"
			return nil
		},
		Reconcile: []Member{c},
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if snap := c.Snapshot(); snap.Items[0].Keyword != "running" {
		t.Fatalf("snapshot = %#v, want re-fetched backend state", snap.Items)
	}
}
