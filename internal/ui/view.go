package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.page {
	case PageDashboard:
		b.WriteString(m.renderDashboard())
	case PageQueue:
		b.WriteString(m.renderQueuePage())
	case PageResults:
		b.WriteString(m.renderResults())
	case PageSettings:
		b.WriteString(m.renderSettings())
	}

	if m.notice.visible {
		b.WriteString("\n")
		b.WriteString(m.renderNotice())
	}

	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	tabs := make([]string, 0, int(pageCount))
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d:%s", int(p)+1, p.String())
		if p == m.page {
			tabs = append(tabs, styles.AccentText.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}

	left := styles.Logo.Render("dnatop") + "  " + strings.Join(tabs, "  ")

	right := styles.FaintText.Render("updated " + humanizeSince(m.activeUpdatedAt(), time.Now()))
	if m.busy != "" {
		right = styles.WarningText.Render(m.busy+"...") + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Render(left + strings.Repeat(" ", gap) + right)
}

// activeUpdatedAt reports when the active page's data last changed.
func (m Model) activeUpdatedAt() time.Time {
	switch m.page {
	case PageQueue:
		return m.queue.queueSnap.UpdatedAt
	case PageResults:
		return m.results.jobsSnap.UpdatedAt
	case PageSettings:
		return m.settings.snap.UpdatedAt
	default:
		t := m.dashboard.queueSnap.UpdatedAt
		if s := m.dashboard.statusSnap.UpdatedAt; s.After(t) {
			t = s
		}
		return t
	}
}

func (m Model) renderNotice() string {
	styles := m.theme.Styles()
	text := m.notice.text + "  " + styles.MutedText.Render("(esc to dismiss)")
	if m.notice.danger {
		return styles.Notice.Render(styles.DangerText.Render(text))
	}
	return styles.Panel.Render(styles.SuccessText.Render(text))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints []string
	switch m.page {
	case PageDashboard:
		hints = []string{"a add", "s start", "j/k move"}
	case PageQueue:
		hints = []string{"s start", "x remove", "j/k move"}
	case PageResults:
		hints = []string{"/ search", "f filter", "c contacted", "i ignored", "X export"}
	case PageSettings:
		hints = []string{"enter edit", "w save", "r reset"}
	}
	hints = append(hints, "tab page", "h help", "e quit")

	return styles.MutedText.Render("  " + strings.Join(hints, "  •  "))
}
