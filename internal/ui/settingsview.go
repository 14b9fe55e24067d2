package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/syncer"
)

// settingsField indexes the editable settings form rows.
type settingsField int

const (
	fieldAPIURL settingsField = iota
	fieldScrapeInterval
	fieldMaxPages
	fieldHeadless
	fieldUserAgent
	fieldProxy
	settingsFieldCount
)

func (f settingsField) label() string {
	switch f {
	case fieldAPIURL:
		return "api url"
	case fieldScrapeInterval:
		return "scrape interval (ms)"
	case fieldMaxPages:
		return "max pages"
	case fieldHeadless:
		return "headless"
	case fieldUserAgent:
		return "user agent"
	case fieldProxy:
		return "proxy"
	}
	return ""
}

// settingsPage edits the backend's singleton scraper settings. The form is
// loaded once per page entry, mutated only in memory, and persisted only
// on an explicit save.
type settingsPage struct {
	sync     *syncer.Synchronizer
	settings *syncer.Value[api.Settings]

	snap syncer.ValueSnapshot[api.Settings]

	form   api.Settings
	loaded bool

	fieldIdx settingsField
	editing  bool
	editor   textinput.Model
}

func newSettingsPage(client api.Backend, interval time.Duration, log *logrus.Logger) *settingsPage {
	settings := syncer.NewValue("settings", client.FetchSettings)

	editor := textinput.New()
	editor.CharLimit = 500
	editor.Width = 50

	return &settingsPage{
		sync:     syncer.New("settings", interval, log, settings),
		settings: settings,
		form:     api.DefaultSettings(),
		editor:   editor,
	}
}

// resetForm discards in-memory edits so the next fetched value seeds the
// form again. Called on page entry.
func (p *settingsPage) resetForm() {
	p.loaded = false
	p.editing = false
	p.fieldIdx = 0
}

func (p *settingsPage) refresh() {
	p.snap = p.settings.Snapshot()
	if !p.loaded && p.snap.HasValue {
		p.form = p.snap.Value
		p.loaded = true
	}
}

func (p *settingsPage) startEditing() {
	if p.fieldIdx == fieldHeadless {
		p.form.Headless = !p.form.Headless
		return
	}
	p.editing = true
	p.editor.SetValue(p.fieldValue(p.fieldIdx))
	p.editor.Focus()
}

func (p *settingsPage) confirmEdit() {
	value := p.editor.Value()
	switch p.fieldIdx {
	case fieldAPIURL:
		p.form.APIURL = strings.TrimSpace(value)
	case fieldScrapeInterval:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			p.form.ScrapeInterval = n
		}
	case fieldMaxPages:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			p.form.MaxPages = n
		}
	case fieldUserAgent:
		p.form.UserAgent = strings.TrimSpace(value)
	case fieldProxy:
		p.form.Proxy = strings.TrimSpace(value)
	}
	p.editing = false
	p.editor.Blur()
}

func (p *settingsPage) cancelEdit() {
	p.editing = false
	p.editor.Blur()
}

func (p *settingsPage) fieldValue(f settingsField) string {
	switch f {
	case fieldAPIURL:
		return p.form.APIURL
	case fieldScrapeInterval:
		return strconv.Itoa(p.form.ScrapeInterval)
	case fieldMaxPages:
		return strconv.Itoa(p.form.MaxPages)
	case fieldHeadless:
		return strconv.FormatBool(p.form.Headless)
	case fieldUserAgent:
		return p.form.UserAgent
	case fieldProxy:
		return p.form.Proxy
	}
	return ""
}

func (p *settingsPage) saveMutation(client api.Backend) syncer.Mutation {
	payload := p.form
	return syncer.Mutation{
		Name:      "save settings",
		Validate:  payload.Validate,
		Write:     func(ctx context.Context) error { return client.SaveSettings(ctx, payload) },
		Reconcile: []syncer.Member{p.settings},
	}
}

// resetMutation sets every field to the documented defaults and issues
// exactly one save with that payload.
func (p *settingsPage) resetMutation(client api.Backend) syncer.Mutation {
	p.form = api.DefaultSettings()
	payload := p.form
	return syncer.Mutation{
		Name:      "reset settings",
		Validate:  payload.Validate,
		Write:     func(ctx context.Context) error { return client.SaveSettings(ctx, payload) },
		Reconcile: []syncer.Member{p.settings},
	}
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	p := m.settings
	var b strings.Builder

	if !p.loaded {
		if p.snap.Err != nil {
			b.WriteString(styles.DangerText.Render("  could not load settings, editing defaults"))
		} else {
			b.WriteString(styles.MutedText.Render("  loading settings..."))
		}
		b.WriteString("\n")
	}

	for f := settingsField(0); f < settingsFieldCount; f++ {
		label := pad(f.label(), 22)
		var value string
		if p.editing && f == p.fieldIdx {
			value = p.editor.View()
		} else {
			value = p.fieldValue(f)
			if value == "" {
				value = styles.FaintText.Render("(unset)")
			}
		}

		row := fmt.Sprintf("%s %s", styles.MutedText.Render(label), value)
		if f == p.fieldIdx && !p.editing {
			b.WriteString(styles.Selected.Render("> ") + row)
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  enter edit/toggle  •  w save  •  r reset to defaults"))
	b.WriteString("\n")
	return b.String()
}
