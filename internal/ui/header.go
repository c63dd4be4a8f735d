package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/homepage/internal/state"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// statusLine is a transient message in the header.
type statusLine struct {
	text string
	kind statusKind
	gen  int
}

type statusClearMsg struct{ gen int }

// setStatus shows text until StatusMessageTTL passes or another message
// replaces it.
func (m Model) setStatus(text string, kind statusKind) (Model, tea.Cmd) {
	m.status.gen++
	m.status.text = text
	m.status.kind = kind
	gen := m.status.gen
	return m, tea.Tick(StatusMessageTTL, func(time.Time) tea.Msg {
		return statusClearMsg{gen: gen}
	})
}

// renderHeader renders the banner row and the load status row.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{m.renderBanner()}
	if tagline := strings.TrimSpace(m.profile.Tagline); tagline != "" {
		parts = append(parts, bg.Render(tagline, styles.MutedText))
	}
	top := styles.Header.Width(m.width).Render(bg.Join(parts, 2))

	return top + "\n" + styles.Header.Width(m.width).Render(m.renderStatus(bg))
}

// renderBanner draws the name. With motion on, a highlight sweeps across it.
func (m Model) renderBanner() string {
	name := m.profile.Name
	if name == "" {
		name = "homepage"
	}
	base := m.theme.Styles().Logo.Background(lipgloss.Color(m.theme.Surface))
	if !m.theme.Motion {
		return base.Render(name)
	}

	runes := []rune(name)
	// The sweep pauses off the end of the name before wrapping around.
	period := len(runes) + 6
	pos := m.frame % period
	shine := base.Foreground(lipgloss.Color(m.theme.Shimmer))

	var b strings.Builder
	for i, r := range runes {
		if d := i - pos; d >= -1 && d <= 1 {
			b.WriteString(shine.Render(string(r)))
			continue
		}
		b.WriteString(base.Render(string(r)))
	}
	return b.String()
}

// renderStatus summarises document loading and any transient message.
func (m Model) renderStatus(bg BgStyle) string {
	styles := m.theme.Styles()
	var parts []string

	if m.snapshot.Loading() {
		indicator := "..."
		if m.theme.Motion {
			indicator = m.spinner.View()
		}
		parts = append(parts, indicator+bg.Space()+bg.Render("Loading site data", styles.MutedText))
	} else {
		parts = append(parts, m.resourceBadge("links", m.snapshot.LinksStatus, bg, styles))
	}

	if m.status.text != "" {
		style := styles.InfoText
		switch m.status.kind {
		case statusOK:
			style = styles.SuccessText
		case statusWarn:
			style = styles.WarningText
		case statusError:
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.status.text, m.contentWidth()), style))
	}
	return bg.Join(parts, 2)
}

func (m Model) resourceBadge(name string, status state.Status, bg BgStyle, styles Styles) string {
	switch status {
	case state.Ready:
		return bg.Render("● "+name, styles.SuccessText)
	case state.Degraded:
		return bg.Render("● "+name+" unavailable", styles.DangerText)
	default:
		return bg.Render("○ "+name, styles.FaintText)
	}
}

// renderFooter renders the version text and the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	version := m.snapshot.VersionText
	versionStyle := styles.MutedText
	switch {
	case m.snapshot.VersionStatus == state.Loading:
		version = "Version: loading..."
		versionStyle = styles.FaintText
	case m.snapshot.VersionStatus == state.Degraded:
		versionStyle = styles.WarningText
	}

	h := m.help
	h.Width = max(m.width-lipgloss.Width(version)-6, 10)
	hints := h.ShortHelpView(m.keys.ShortHelp())

	return styles.Footer.Width(m.width).Render(bg.Render(version, versionStyle) + bg.Spaces(3) + hints)
}
