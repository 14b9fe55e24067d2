package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ListAdapter normalizes list envelopes whose element key varies by
// endpoint (the backend names its arrays items, queue, jobs, or results
// depending on the route). Each adapter is tagged with the keys it accepts,
// tried in priority order; a successful response matching none of them
// decodes to an empty sequence rather than an error.
type ListAdapter[T any] struct {
	keys []string
}

// NewListAdapter builds an adapter accepting the given envelope keys, in
// priority order.
func NewListAdapter[T any](keys ...string) ListAdapter[T] {
	return ListAdapter[T]{keys: keys}
}

// Decode extracts the entity slice from a raw response body. A bare JSON
// array is accepted as-is.
func (a ListAdapter[T]) Decode(body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	for _, key := range a.keys {
		raw, ok := envelope[key]
		if !ok || isJSONNull(raw) {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %q list: %w", key, err)
		}
		return items, nil
	}
	// Known shapes exhausted but the call itself succeeded.
	return []T{}, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
