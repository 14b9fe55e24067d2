package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// uiRefreshInterval is the render cadence. The synchronizers poll the
// backend on their own timers; this tick only re-reads their snapshots.
const uiRefreshInterval = time.Second

// tickMsg triggers a snapshot re-read and re-render.
type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// actionDoneMsg reports the outcome of one mutation. Err is nil on
// success; otherwise it carries the typed failure for a one-shot notice.
type actionDoneMsg struct {
	action string
	err    error
}

// exportDoneMsg reports the outcome of a CSV export.
type exportDoneMsg struct {
	path string
	err  error
}
