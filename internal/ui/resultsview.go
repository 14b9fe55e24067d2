package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/results"
	"github.com/turtir-ai/upwork-dna-sub001/internal/syncer"
)

// resultsPage shows scraped jobs with search, keyword filtering, contact
// state actions, and CSV export of the filtered rows.
type resultsPage struct {
	sync *syncer.Synchronizer
	jobs *syncer.Collection[api.ScrapedJob]

	jobsSnap syncer.ListSnapshot[api.ScrapedJob]
	// filtered is the derived view over jobsSnap.Items; it is recomputed
	// whenever the snapshot or the filters change, never fetched.
	filtered []api.ScrapedJob
	selected int

	searching   bool
	searchInput textinput.Model
	search      string
	// keywordIdx indexes into keywords; -1 means no keyword filter.
	keywordIdx int
	keywords   []string
}

func newResultsPage(client api.Backend, interval time.Duration, log *logrus.Logger) *resultsPage {
	jobs := syncer.NewCollection("jobs", client.ListResults)

	input := textinput.New()
	input.Placeholder = "search title/description"
	input.CharLimit = 200
	input.Width = 40

	return &resultsPage{
		sync:        syncer.New("results", interval, log, jobs),
		jobs:        jobs,
		searchInput: input,
		keywordIdx:  -1,
	}
}

func (p *resultsPage) refresh() {
	p.jobsSnap = p.jobs.Snapshot()
	p.keywords = results.Keywords(p.jobsSnap.Items)
	if p.keywordIdx >= len(p.keywords) {
		p.keywordIdx = -1
	}
	p.applyFilters()
}

func (p *resultsPage) applyFilters() {
	p.filtered = results.Filter(p.jobsSnap.Items, p.search, p.keywordFilter())
	if p.selected >= len(p.filtered) {
		p.selected = len(p.filtered) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *resultsPage) keywordFilter() string {
	if p.keywordIdx < 0 || p.keywordIdx >= len(p.keywords) {
		return ""
	}
	return p.keywords[p.keywordIdx]
}

func (p *resultsPage) cycleKeywordFilter() {
	p.keywordIdx++
	if p.keywordIdx >= len(p.keywords) {
		p.keywordIdx = -1
	}
	p.applyFilters()
}

func (p *resultsPage) startSearch() {
	p.searching = true
	p.searchInput.SetValue(p.search)
	p.searchInput.Focus()
}

func (p *resultsPage) confirmSearch() {
	p.search = p.searchInput.Value()
	p.searching = false
	p.searchInput.Blur()
	p.applyFilters()
}

func (p *resultsPage) cancelSearch() {
	p.searching = false
	p.searchInput.Blur()
}

func (p *resultsPage) selectedJob() (api.ScrapedJob, bool) {
	if p.selected < 0 || p.selected >= len(p.filtered) {
		return api.ScrapedJob{}, false
	}
	return p.filtered[p.selected], true
}

func (p *resultsPage) contactedMutation(client api.Backend, job api.ScrapedJob) syncer.Mutation {
	return syncer.Mutation{
		Name:      "mark contacted",
		Write:     func(ctx context.Context) error { return client.MarkContacted(ctx, job.ID) },
		Reconcile: []syncer.Member{p.jobs},
	}
}

func (p *resultsPage) ignoredMutation(client api.Backend, job api.ScrapedJob) syncer.Mutation {
	return syncer.Mutation{
		Name:      "mark ignored",
		Write:     func(ctx context.Context) error { return client.MarkIgnored(ctx, job.ID) },
		Reconcile: []syncer.Member{p.jobs},
	}
}

// exportCmd writes the currently filtered rows to a CSV file.
func (p *resultsPage) exportCmd(dir string) tea.Cmd {
	rows := make([]api.ScrapedJob, len(p.filtered))
	copy(rows, p.filtered)
	return func() tea.Msg {
		path, err := results.WriteCSVFile(dir, rows, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) renderResults() string {
	styles := m.theme.Styles()
	p := m.results
	var b strings.Builder

	filterLine := styles.MutedText.Render("filter: ")
	if kw := p.keywordFilter(); kw != "" {
		filterLine += styles.AccentText.Render(kw)
	} else {
		filterLine += styles.Text.Render("all keywords")
	}
	if p.searching {
		filterLine += "  " + styles.AccentText.Render("search: ") + p.searchInput.View()
	} else if p.search != "" {
		filterLine += "  " + styles.MutedText.Render("search: ") + styles.Text.Render(p.search)
	}
	filterLine += "  " + styles.FaintText.Render(fmt.Sprintf("%d/%d jobs", len(p.filtered), len(p.jobsSnap.Items)))
	b.WriteString(filterLine)
	b.WriteString("\n")

	header := fmt.Sprintf("  %s %s %s %s %s",
		pad("TITLE", 40), pad("KEYWORD", 18), pad("BUDGET", 12), pad("STATUS", 10), pad("SCRAPED", 12))
	b.WriteString(styles.TableHead.Render(header))
	b.WriteString("\n")

	if len(p.filtered) == 0 {
		if len(p.jobsSnap.Items) == 0 && !p.jobsSnap.HasData {
			b.WriteString(styles.MutedText.Render("  waiting for backend..."))
		} else {
			b.WriteString(styles.MutedText.Render("  no jobs match the current filter"))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, job := range p.filtered {
		statusStyle := styles.Text.Foreground(lipgloss.Color(m.theme.StatusColor(job.Status)))
		scraped := humanizeSince(job.ParsedScrapedAt(), time.Now())
		row := fmt.Sprintf("%s %s %s %s %s",
			pad(job.Title, 40),
			pad(job.Keyword, 18),
			pad(job.Budget, 12),
			statusStyle.Render(pad(job.Status, 10)),
			pad(scraped, 12))

		if i == p.selected {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if job, ok := p.selectedJob(); ok {
		detail := styles.MutedText.Render("url: ") + styles.AccentText.Render(job.URL)
		if job.Description != "" {
			detail += "\n" + styles.FaintText.Render(truncate(job.Description, 200))
		}
		b.WriteString(styles.Panel.Render(detail))
		b.WriteString("\n")
	}

	if p.jobsSnap.Stale() {
		b.WriteString(styles.WarningText.Render(
			fmt.Sprintf("  showing stale data (%s)", humanizeSince(p.jobsSnap.UpdatedAt, time.Now()))))
		b.WriteString("\n")
	}
	return b.String()
}
