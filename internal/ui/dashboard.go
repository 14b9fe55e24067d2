package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/syncer"
)

// jobTypeChoices is the job_type vocabulary, in cycle order.
var jobTypeChoices = []string{"jobs", "talent", "projects", "all"}

// dashboardPage shows the system status panel, the most recent queue
// entries, and the add-keyword form.
type dashboardPage struct {
	sync   *syncer.Synchronizer
	queue  *syncer.Collection[api.QueueItem]
	status *syncer.Value[api.SystemStatus]

	queueSnap  syncer.ListSnapshot[api.QueueItem]
	statusSnap syncer.ValueSnapshot[api.SystemStatus]

	selected int

	adding       bool
	keywordInput textinput.Model
	jobTypeIdx   int
	priority     int
}

func newDashboardPage(client api.Backend, interval time.Duration, log *logrus.Logger) *dashboardPage {
	queue := syncer.NewCollection("queue", client.ListQueue)
	status := syncer.NewValue("status", func(ctx context.Context) (api.SystemStatus, error) {
		s, err := client.FetchStatus(ctx)
		if err != nil {
			return api.SystemStatus{}, err
		}
		return *s, nil
	})

	input := textinput.New()
	input.Placeholder = "keyword"
	input.CharLimit = 200
	input.Width = 40

	return &dashboardPage{
		sync:         syncer.New("dashboard", interval, log, queue, status),
		queue:        queue,
		status:       status,
		keywordInput: input,
	}
}

func (p *dashboardPage) refresh() {
	p.queueSnap = p.queue.Snapshot()
	p.statusSnap = p.status.Snapshot()
	if p.selected >= len(p.queueSnap.Items) {
		p.selected = len(p.queueSnap.Items) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *dashboardPage) startAdding() {
	p.adding = true
	p.keywordInput.SetValue("")
	p.keywordInput.Focus()
}

func (p *dashboardPage) cancelAdding() {
	p.adding = false
	p.keywordInput.Blur()
}

// addMutation builds the add-keyword action from the form state.
func (p *dashboardPage) addMutation(client api.Backend) syncer.Mutation {
	req := api.AddQueueRequest{
		Keyword:  p.keywordInput.Value(),
		JobType:  jobTypeChoices[p.jobTypeIdx],
		Priority: p.priority,
	}
	return syncer.Mutation{
		Name:      "add keyword",
		Validate:  req.Validate,
		Write:     func(ctx context.Context) error { return client.AddQueueItem(ctx, req) },
		Reconcile: []syncer.Member{p.queue},
	}
}

// startMutation builds the start-scrape action for the selected item.
// maxPages carries the configured scrape depth so the backend's own
// default doesn't silently override saved settings.
func (p *dashboardPage) startMutation(client api.Backend, item api.QueueItem, maxPages int) syncer.Mutation {
	req := api.StartScrapeRequest{Keyword: item.Keyword, JobType: item.JobType, MaxPages: maxPages}
	return syncer.Mutation{
		Name:     "start scrape",
		Validate: req.Validate,
		Write: func(ctx context.Context) error {
			_, err := client.StartScrape(ctx, req)
			return err
		},
		Reconcile: []syncer.Member{p.queue},
	}
}

func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(m.renderStatusPanel())
	b.WriteString("\n")

	if m.dashboard.adding {
		form := fmt.Sprintf("%s %s  %s %s  %s %d",
			styles.AccentText.Render("keyword:"),
			m.dashboard.keywordInput.View(),
			styles.AccentText.Render("type:"),
			styles.Text.Render(jobTypeChoices[m.dashboard.jobTypeIdx]),
			styles.AccentText.Render("priority:"),
			m.dashboard.priority,
		)
		hint := styles.MutedText.Render("enter add  •  ctrl+t cycle type  •  +/- priority  •  esc cancel")
		b.WriteString(styles.Panel.Render(form + "\n" + hint))
		b.WriteString("\n")
	}

	b.WriteString(m.renderQueueTable(m.dashboard.queueSnap, m.dashboard.selected, dashboardQueueRows))
	return b.String()
}

// dashboardQueueRows caps the recent-queue listing on the dashboard.
const dashboardQueueRows = 8

func (m Model) renderStatusPanel() string {
	styles := m.theme.Styles()
	snap := m.dashboard.statusSnap

	if !snap.HasValue {
		if snap.Err != nil {
			return styles.Panel.Render(styles.DangerText.Render("backend unreachable") +
				styles.MutedText.Render("  retrying..."))
		}
		return styles.Panel.Render(styles.WarningText.Render("Connecting to backend..."))
	}

	s := snap.Value
	parts := []string{
		styles.AccentText.Render("api " + s.APIVersion),
		styles.MutedText.Render("up ") + styles.Text.Render(s.Uptime),
		styles.MutedText.Render("queue ") + styles.Text.Render(fmt.Sprintf("%d", s.QueueCount)),
		styles.MutedText.Render("active ") + styles.Text.Render(fmt.Sprintf("%d", s.ActiveJobs)),
		styles.MutedText.Render("jobs ") + styles.Text.Render(fmt.Sprintf("%d", s.JobsCount)),
		styles.MutedText.Render("talent ") + styles.Text.Render(fmt.Sprintf("%d", s.TalentCount)),
	}
	line := strings.Join(parts, "  •  ")
	if snap.Stale() {
		// Keep showing the last known values, just flag them.
		line += "  " + styles.WarningText.Render("(stale)")
	}
	return styles.Panel.Render(line)
}
