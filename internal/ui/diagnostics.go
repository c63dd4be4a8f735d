package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/homepage/internal/logtail"
)

type diagnosticsMsg struct {
	entries []logtail.Entry
	err     error
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logtail.DefaultLines)
		return diagnosticsMsg{entries: logtail.ParseLines(lines), err: err}
	}
}

// diagnosticsModal shows the tail of the log file in a scrollable viewport.
type diagnosticsModal struct {
	path     string
	entries  []logtail.Entry
	err      error
	loaded   bool
	toBottom bool
	viewport viewport.Model
}

func newDiagnosticsModal(path string, width, height int) *diagnosticsModal {
	vp := viewport.New(diagnosticsWidth(width), diagnosticsHeight(height))
	return &diagnosticsModal{path: path, viewport: vp}
}

func diagnosticsWidth(width int) int {
	if width <= 0 {
		return 80
	}
	return max(width-8, 20)
}

func diagnosticsHeight(height int) int {
	if height <= 0 {
		return 20
	}
	return max(height-10, 5)
}

func (d *diagnosticsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case diagnosticsMsg:
		d.entries = msg.entries
		d.err = msg.err
		d.loaded = true
		d.toBottom = true
		return d, nil, false
	case tea.WindowSizeMsg:
		d.viewport.Width = diagnosticsWidth(msg.Width)
		d.viewport.Height = diagnosticsHeight(msg.Height)
		return d, nil, false
	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) || key.Matches(msg, keys.Diagnostics) || key.Matches(msg, keys.Quit) {
			return d, nil, true
		}
		if msg.String() == "r" {
			return d, loadDiagnosticsCmd(d.path), false
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd, false
}

func (d *diagnosticsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Diagnostics"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(truncate(d.path, d.viewport.Width-14)))
	b.WriteString("\n\n")

	switch {
	case d.path == "":
		b.WriteString(styles.MutedText.Render("File logging is disabled."))
	case !d.loaded:
		b.WriteString(styles.MutedText.Render("Reading log..."))
	case d.err != nil:
		b.WriteString(styles.DangerText.Render(d.err.Error()))
	case len(d.entries) == 0:
		b.WriteString(styles.MutedText.Render("No log entries yet."))
	default:
		d.viewport.SetContent(d.renderEntries(styles))
		if d.toBottom {
			d.viewport.GotoBottom()
			d.toBottom = false
		}
		b.WriteString(d.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k scroll  r reload  esc close"))
	return placeModal(theme, width, height, d.viewport.Width+6, b.String())
}

func (d *diagnosticsModal) renderEntries(styles Styles) string {
	lines := make([]string, len(d.entries))
	for i, e := range d.entries {
		text := truncate(e.String(), d.viewport.Width)
		switch e.Level {
		case "ERROR", "DPANIC", "PANIC", "FATAL":
			lines[i] = styles.DangerText.Render(text)
		case "WARN":
			lines[i] = styles.WarningText.Render(text)
		case "DEBUG":
			lines[i] = styles.FaintText.Render(text)
		default:
			lines[i] = styles.Text.Render(text)
		}
	}
	return strings.Join(lines, "\n")
}
