package syncer

import (
	"context"
	"sync"
	"time"
)

// GetFunc loads a snapshot value object from the backend.
type GetFunc[T any] func(ctx context.Context) (T, error)

// Value mirrors a singleton snapshot object (system status, settings). The
// value is always replaced wholesale on a successful fetch, never merged
// field by field, and kept as-is when a fetch fails.
type Value[T any] struct {
	name string
	get  GetFunc[T]

	mu       sync.Mutex
	value    T
	seq      uint64
	err      error
	failures int
	updated  time.Time
	hasValue bool
}

// NewValue builds a named snapshot mirror backed by get.
func NewValue[T any](name string, get GetFunc[T]) *Value[T] {
	return &Value[T]{name: name, get: get}
}

// Name returns the value's name.
func (v *Value[T]) Name() string { return v.name }

func (v *Value[T]) refresh(ctx context.Context, seq uint64) error {
	value, err := v.get(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	v.apply(seq, value, err)
	return err
}

func (v *Value[T]) apply(seq uint64, value T, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq < v.seq {
		return
	}
	v.seq = seq
	if err != nil {
		v.err = err
		v.failures++
		return
	}
	v.value = value
	// UpdatedAt describes the data on screen, so failed attempts don't
	// move it.
	v.updated = time.Now()
	v.hasValue = true
	v.err = nil
	v.failures = 0
}

// ValueSnapshot is a point-in-time copy of a Value's state.
type ValueSnapshot[T any] struct {
	Value     T
	HasValue  bool
	Err       error
	Failures  int
	UpdatedAt time.Time
}

// Stale reports whether the mirror has missed enough refreshes that the
// displayed data should be flagged as out of date.
func (s ValueSnapshot[T]) Stale() bool { return s.Failures >= 2 }

// Snapshot returns a copy of the current state.
func (v *Value[T]) Snapshot() ValueSnapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ValueSnapshot[T]{
		Value:     v.value,
		HasValue:  v.hasValue,
		Err:       v.err,
		Failures:  v.failures,
		UpdatedAt: v.updated,
	}
}
