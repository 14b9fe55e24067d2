package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"short enough", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny limit", "hello", 2, "he"},
		{"zero limit returns all", "hello", 0, "hello"},
		{"trims whitespace", "  hi  ", 10, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.value, tt.limit))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "ab...", pad("abcdefgh", 5))
	assert.Len(t, []rune(pad("", 8)), 8)
}

func TestHumanizeSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", humanizeSince(time.Time{}, now))
	assert.Equal(t, "now", humanizeSince(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", humanizeSince(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", humanizeSince(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Mar 8 12:00", humanizeSince(now.Add(-48*time.Hour), now))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", progressBar(50, 12))
	assert.Equal(t, "[░░░░░░░░░░]", progressBar(0, 12))
	assert.Equal(t, "[██████████]", progressBar(100, 12))
	// Out-of-range values clamp instead of panicking.
	assert.Equal(t, "[██████████]", progressBar(250, 12))
	assert.Equal(t, "[░░░░░░░░░░]", progressBar(-5, 12))
	assert.Equal(t, "", progressBar(50, 1))
}
