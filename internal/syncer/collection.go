// Package syncer keeps per-page mirrors of backend collections fresh under
// periodic polling, forced post-mutation refreshes, and partial failure of
// any one fetch. The backend is the sole source of truth; everything here
// is a disposable cache.
package syncer

import (
	"context"
	"sync"
	"time"
)

// FetchFunc loads the authoritative contents of a list collection.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection mirrors one backend list endpoint. A failed fetch keeps the
// previous items (a stale view beats an empty one) and records the error
// for this collection only. Responses are sequence-stamped so a slow fetch
// from an earlier tick can never overwrite a newer result.
type Collection[T any] struct {
	name  string
	fetch FetchFunc[T]

	mu       sync.Mutex
	items    []T
	seq      uint64
	err      error
	failures int
	updated  time.Time
	hasData  bool
}

// NewCollection builds a named collection backed by fetch.
func NewCollection[T any](name string, fetch FetchFunc[T]) *Collection[T] {
	return &Collection[T]{name: name, fetch: fetch}
}

// Name returns the collection's name.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) refresh(ctx context.Context, seq uint64) error {
	items, err := c.fetch(ctx)
	if ctx.Err() != nil {
		// The owning page was torn down while the request was in flight;
		// there is no live view to apply this to.
		return ctx.Err()
	}
	c.apply(seq, items, err)
	return err
}

func (c *Collection[T]) apply(seq uint64, items []T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.seq {
		return
	}
	c.seq = seq
	if err != nil {
		c.err = err
		c.failures++
		return
	}
	c.items = cloneSlice(items)
	// UpdatedAt describes the data on screen, so failed attempts don't
	// move it.
	c.updated = time.Now()
	c.hasData = true
	c.err = nil
	c.failures = 0
}

// ListSnapshot is a point-in-time copy of a collection's state.
type ListSnapshot[T any] struct {
	Items     []T
	HasData   bool
	Err       error
	Failures  int
	UpdatedAt time.Time
}

// Stale reports whether the mirror has missed enough refreshes that the
// displayed data should be flagged as out of date.
func (s ListSnapshot[T]) Stale() bool { return s.Failures >= 2 }

// Snapshot returns an independent copy of the current state.
func (c *Collection[T]) Snapshot() ListSnapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListSnapshot[T]{
		Items:     cloneSlice(c.items),
		HasData:   c.hasData,
		Err:       c.err,
		Failures:  c.failures,
		UpdatedAt: c.updated,
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
