package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/prefs"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text-entry modes capture everything except their own confirm and
	// cancel keys.
	if m.page == PageDashboard && m.dashboard.adding {
		return m.handleAddFormKey(msg)
	}
	if m.page == PageResults && m.results.searching {
		return m.handleSearchKey(msg)
	}
	if m.page == PageSettings && m.settings.editing {
		return m.handleSettingsEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.notice.visible {
			m.notice.dismiss()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		saved := prefs.Load(m.prefsPath)
		saved.Theme = m.theme.Name
		if err := prefs.Save(m.prefsPath, saved); err != nil {
			m.log.WithError(err).Warn("failed to save preferences")
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.switchPage((m.page + 1) % pageCount)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchPage((m.page + pageCount - 1) % pageCount)
		return m, nil

	case key.Matches(msg, m.keys.PageDashboard):
		m.switchPage(PageDashboard)
		return m, nil

	case key.Matches(msg, m.keys.PageQueue):
		m.switchPage(PageQueue)
		return m, nil

	case key.Matches(msg, m.keys.PageResults):
		m.switchPage(PageResults)
		return m, nil

	case key.Matches(msg, m.keys.PageSettings):
		m.switchPage(PageSettings)
		return m, nil
	}

	switch m.page {
	case PageDashboard:
		return m.handleDashboardKey(msg)
	case PageQueue:
		return m.handleQueueKey(msg)
	case PageResults:
		return m.handleResultsKey(msg)
	case PageSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleAddFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.dashboard
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.busy != "" {
			return m, nil
		}
		mut := p.addMutation(m.client)
		// Rejected input keeps the form open for correction instead of
		// throwing the entry away.
		if err := mut.Validate(); err != nil {
			m.notice.showError(mut.Name, api.UserMessage(err))
			return m, nil
		}
		cmd := m.doCmd(p.sync, mut)
		p.cancelAdding()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		p.cancelAdding()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+t":
		p.jobTypeIdx = (p.jobTypeIdx + 1) % len(jobTypeChoices)
		return m, nil
	case "+":
		if p.priority < 10 {
			p.priority++
		}
		return m, nil
	case "-":
		if p.priority > 0 {
			p.priority--
		}
		return m, nil
	}

	var cmd tea.Cmd
	p.keywordInput, cmd = p.keywordInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.results
	switch {
	case key.Matches(msg, m.keys.Confirm):
		p.confirmSearch()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		p.cancelSearch()
		return m, nil
	}

	var cmd tea.Cmd
	p.searchInput, cmd = p.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleSettingsEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.settings
	switch {
	case key.Matches(msg, m.keys.Confirm):
		p.confirmEdit()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		p.cancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.dashboard
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if p.selected < len(p.queueSnap.Items)-1 {
			p.selected++
		}
	case key.Matches(msg, m.keys.Top):
		p.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		p.selected = len(p.queueSnap.Items) - 1
		if p.selected < 0 {
			p.selected = 0
		}

	case key.Matches(msg, m.keys.Add):
		p.startAdding()

	case key.Matches(msg, m.keys.Start):
		if m.busy != "" {
			return m, nil
		}
		if p.selected >= 0 && p.selected < len(p.queueSnap.Items) {
			item := p.queueSnap.Items[p.selected]
			return m, m.doCmd(p.sync, p.startMutation(m.client, item, m.scrapeMaxPages()))
		}
	}
	return m, nil
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.queue
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if p.selected < len(p.queueSnap.Items)-1 {
			p.selected++
		}
	case key.Matches(msg, m.keys.Top):
		p.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		p.selected = len(p.queueSnap.Items) - 1
		if p.selected < 0 {
			p.selected = 0
		}

	case key.Matches(msg, m.keys.Remove):
		if m.busy != "" {
			return m, nil
		}
		if item, ok := p.selectedItem(); ok {
			return m, m.doCmd(p.sync, p.removeMutation(m.client, item))
		}

	case key.Matches(msg, m.keys.Start):
		if m.busy != "" {
			return m, nil
		}
		if item, ok := p.selectedItem(); ok {
			return m, m.doCmd(p.sync, p.startMutation(m.client, item, m.scrapeMaxPages()))
		}
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.results
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if p.selected < len(p.filtered)-1 {
			p.selected++
		}
	case key.Matches(msg, m.keys.Top):
		p.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		p.selected = len(p.filtered) - 1
		if p.selected < 0 {
			p.selected = 0
		}

	case key.Matches(msg, m.keys.Search):
		p.startSearch()

	case key.Matches(msg, m.keys.Filter):
		p.cycleKeywordFilter()

	case key.Matches(msg, m.keys.Export):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "export csv"
		return m, p.exportCmd(m.exportDir)

	case key.Matches(msg, m.keys.Contacted):
		if m.busy != "" {
			return m, nil
		}
		if job, ok := p.selectedJob(); ok {
			return m, m.doCmd(p.sync, p.contactedMutation(m.client, job))
		}

	case key.Matches(msg, m.keys.Ignored):
		if m.busy != "" {
			return m, nil
		}
		if job, ok := p.selectedJob(); ok {
			return m, m.doCmd(p.sync, p.ignoredMutation(m.client, job))
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.settings
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.fieldIdx > 0 {
			p.fieldIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if p.fieldIdx < settingsFieldCount-1 {
			p.fieldIdx++
		}

	case key.Matches(msg, m.keys.Confirm):
		p.startEditing()

	case key.Matches(msg, m.keys.Save):
		if m.busy != "" {
			return m, nil
		}
		return m, m.doCmd(p.sync, p.saveMutation(m.client))

	case key.Matches(msg, m.keys.Reset):
		if m.busy != "" {
			return m, nil
		}
		return m, m.doCmd(p.sync, p.resetMutation(m.client))
	}
	return m, nil
}
