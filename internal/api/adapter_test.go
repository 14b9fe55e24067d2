package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAdapter_KeyPriorityOrder(t *testing.T) {
	adapter := NewListAdapter[QueueItem]("items", "queue")

	// Both keys present: the first tagged key wins.
	body := []byte(`{
		"queue": [{"id": 2, "keyword": "fallback"}],
		"items": [{"id": 1, "keyword": "primary"}]
	}`)
	items, err := adapter.Decode(body)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)

	// Primary key absent: falls through to the next one.
	items, err = adapter.Decode([]byte(`{"queue": [{"id": 2, "keyword": "fallback"}]}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestListAdapter_UnknownShapeFallsBackToEmpty(t *testing.T) {
	adapter := NewListAdapter[ScrapedJob]("jobs", "results")

	jobs, err := adapter.Decode([]byte(`{"data": [{"id": 1}], "total": 1}`))
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NotNil(t, jobs, "successful call with unknown shape decodes to an empty sequence, not nil")

	// A null value under a known key is treated as absent.
	jobs, err = adapter.Decode([]byte(`{"jobs": null, "results": [{"id": 3}]}`))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(3), jobs[0].ID)
}

func TestListAdapter_BareArrayAndBadBodies(t *testing.T) {
	adapter := NewListAdapter[QueueItem]("items")

	items, err := adapter.Decode([]byte(`[{"id": 5, "keyword": "golang"}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "golang", items[0].Keyword)

	_, err = adapter.Decode(nil)
	assert.Error(t, err)

	_, err = adapter.Decode([]byte(`not json`))
	assert.Error(t, err)

	// A known key holding a non-array is a malformed payload, not a fallback.
	_, err = adapter.Decode([]byte(`{"items": {"id": 1}}`))
	assert.Error(t, err)
}
