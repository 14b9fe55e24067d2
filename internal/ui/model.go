// Package ui implements the Bubble Tea terminal interface: four pages
// (dashboard, queue, results, settings), each owning its own backend
// synchronizer. Switching pages tears the outgoing page's polling timer
// down and arms a fresh one for the incoming page.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/prefs"
	"github.com/turtir-ai/upwork-dna-sub001/internal/syncer"
)

// Page identifies one of the console's views.
type Page int

const (
	PageDashboard Page = iota
	PageQueue
	PageResults
	PageSettings
	pageCount
)

func (p Page) String() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageQueue:
		return "Queue"
	case PageResults:
		return "Results"
	case PageSettings:
		return "Settings"
	}
	return "unknown"
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       api.Backend
	Log          *logrus.Logger
	PollInterval time.Duration
	ThemeName    string
	PrefsPath    string
	ExportDir    string
}

// Model is the root application state.
type Model struct {
	ctx       context.Context
	client    api.Backend
	log       *logrus.Logger
	prefsPath string
	exportDir string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	page     Page
	showHelp bool
	notice   notice
	// busy names the in-flight mutation; action keys are ignored while
	// one is pending.
	busy string

	dashboard *dashboardPage
	queue     *queuePage
	results   *resultsPage
	settings  *settingsPage
}

// New creates the root model. Each page gets its own collections and
// synchronizer; two pages mirroring the same endpoint stay independent.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		log:       log,
		prefsPath: prefsPath,
		exportDir: exportDir,
		theme:     GetTheme(themeName),
		keys:      defaultKeyMap(),
		page:      PageDashboard,
		dashboard: newDashboardPage(opts.Client, interval, log),
		queue:     newQueuePage(opts.Client, interval, log),
		results:   newResultsPage(opts.Client, interval, log),
		settings:  newSettingsPage(opts.Client, interval, log),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.activeSync().Start(m.ctx)
	return tea.Batch(tea.EnterAltScreen, tickCmd(uiRefreshInterval))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.refreshSnapshots()
		return m, tickCmd(uiRefreshInterval)

	case actionDoneMsg:
		m.busy = ""
		if msg.err != nil {
			m.notice.showError(msg.action, api.UserMessage(msg.err))
		} else {
			m.refreshSnapshots()
		}
		return m, nil

	case exportDoneMsg:
		m.busy = ""
		if msg.err != nil {
			m.notice.showError("export csv", msg.err.Error())
		} else {
			m.notice.showInfo("exported " + msg.path)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Shutdown stops the active page's poller. Called when the program exits.
func (m Model) Shutdown() {
	m.activeSync().Stop()
}

func (m Model) activeSync() *syncer.Synchronizer {
	switch m.page {
	case PageQueue:
		return m.queue.sync
	case PageResults:
		return m.results.sync
	case PageSettings:
		return m.settings.sync
	default:
		return m.dashboard.sync
	}
}

// switchPage disarms the outgoing page's timer and arms a fresh one for
// the incoming page. No timer outlives its page.
func (m *Model) switchPage(next Page) {
	if next == m.page {
		return
	}
	m.activeSync().Stop()
	m.page = next
	if next == PageSettings {
		// Settings are loaded once per page entry and then edited only
		// in memory until an explicit save.
		m.settings.resetForm()
	}
	m.activeSync().Start(m.ctx)
	m.refreshSnapshots()
}

// refreshSnapshots copies the active page's collection state into the
// view model. Rendering never touches the stores directly.
func (m *Model) refreshSnapshots() {
	switch m.page {
	case PageDashboard:
		m.dashboard.refresh()
	case PageQueue:
		m.queue.refresh()
	case PageResults:
		m.results.refresh()
	case PageSettings:
		m.settings.refresh()
	}
}

// scrapeMaxPages resolves the page depth for a start-scrape request: the
// last-fetched backend settings when available, the documented default
// before the first settings fetch.
func (m Model) scrapeMaxPages() int {
	if snap := m.settings.settings.Snapshot(); snap.HasValue {
		return snap.Value.MaxPages
	}
	return api.DefaultSettings().MaxPages
}

// doCmd runs a mutation off the event loop and reports its outcome.
func (m *Model) doCmd(s *syncer.Synchronizer, mut syncer.Mutation) tea.Cmd {
	m.busy = mut.Name
	ctx := m.ctx
	return func() tea.Msg {
		err := s.Do(ctx, mut)
		return actionDoneMsg{action: mut.Name, err: err}
	}
}
