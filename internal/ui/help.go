package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (m Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{"Global", []key.Binding{k.Quit, k.Help, k.CycleTheme, k.Tab, k.ShiftTab, k.Escape}},
		{"Pages", []key.Binding{k.PageDashboard, k.PageQueue, k.PageResults, k.PageSettings}},
		{"Navigation", []key.Binding{k.Up, k.Down, k.Top, k.Bottom}},
		{"Queue", []key.Binding{k.Add, k.Start, k.Remove}},
		{"Results", []key.Binding{k.Search, k.Filter, k.Contacted, k.Ignored, k.Export}},
		{"Settings", []key.Binding{k.Confirm, k.Save, k.Reset}},
	}
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Logo.Render("dnatop keys"))
	b.WriteString("\n\n")

	for _, section := range m.helpSections() {
		b.WriteString(styles.TableHead.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString("  ")
			b.WriteString(styles.AccentText.Render(pad(h.Key, 12)))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedText.Render("press h or esc to close"))
	return b.String()
}
