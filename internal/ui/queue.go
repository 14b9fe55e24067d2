package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/syncer"
)

// queuePage shows the full scraping queue with remove and start actions.
type queuePage struct {
	sync  *syncer.Synchronizer
	queue *syncer.Collection[api.QueueItem]

	queueSnap syncer.ListSnapshot[api.QueueItem]
	selected  int
}

func newQueuePage(client api.Backend, interval time.Duration, log *logrus.Logger) *queuePage {
	queue := syncer.NewCollection("queue", client.ListQueue)
	return &queuePage{
		sync:  syncer.New("queue", interval, log, queue),
		queue: queue,
	}
}

func (p *queuePage) refresh() {
	p.queueSnap = p.queue.Snapshot()
	if p.selected >= len(p.queueSnap.Items) {
		p.selected = len(p.queueSnap.Items) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *queuePage) selectedItem() (api.QueueItem, bool) {
	items := p.queueSnap.Items
	if p.selected < 0 || p.selected >= len(items) {
		return api.QueueItem{}, false
	}
	return items[p.selected], true
}

func (p *queuePage) removeMutation(client api.Backend, item api.QueueItem) syncer.Mutation {
	return syncer.Mutation{
		Name:      "remove item",
		Write:     func(ctx context.Context) error { return client.RemoveQueueItem(ctx, item.ID) },
		Reconcile: []syncer.Member{p.queue},
	}
}

func (p *queuePage) startMutation(client api.Backend, item api.QueueItem, maxPages int) syncer.Mutation {
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

func (m Model) renderQueuePage() string {
	return m.renderQueueTable(m.queue.queueSnap, m.queue.selected, 0)
}

// renderQueueTable renders queue items as a table. maxRows of 0 means all.
func (m Model) renderQueueTable(snap syncer.ListSnapshot[api.QueueItem], selected, maxRows int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	header := fmt.Sprintf("  %s %s %s %s %s",
		pad("KEYWORD", 28), pad("STATUS", 12), pad("TYPE", 10), pad("PRI", 4), pad("PROGRESS", 14))
	b.WriteString(styles.TableHead.Render(header))
	b.WriteString("\n")

	items := snap.Items
	if len(items) == 0 {
		if snap.HasData {
			b.WriteString(styles.MutedText.Render("  queue is empty, press a to add a keyword"))
		} else {
			b.WriteString(styles.MutedText.Render("  waiting for backend..."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range items {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("  ... %d more (press 2 for the full queue)", len(items)-maxRows)))
			b.WriteString("\n")
			break
		}

		progress := ""
		if percent, ok := item.ProgressPercent(); ok {
			progress = fmt.Sprintf("%s %d%%", progressBar(percent, 10), percent)
		}

		statusStyle := styles.Text.Foreground(lipgloss.Color(m.theme.StatusColor(item.Status)))
		row := fmt.Sprintf("%s %s %s %s %s",
			pad(item.Keyword, 28),
			statusStyle.Render(pad(item.Status, 12)),
			pad(item.JobType, 10),
			pad(fmt.Sprintf("%d", item.Priority), 4),
			pad(progress, 14))

		if i == selected {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if snap.Stale() {
		b.WriteString(styles.WarningText.Render(
			fmt.Sprintf("  showing stale data (%s)", humanizeSince(snap.UpdatedAt, time.Now()))))
		b.WriteString("\n")
	}
	return b.String()
}
