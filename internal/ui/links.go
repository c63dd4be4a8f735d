package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/homepage/internal/config"
	"github.com/five82/homepage/internal/state"
)

// linkActionMsg reports the outcome of opening or copying a link.
type linkActionMsg struct {
	label  string
	action string
	err    error
}

// openURL hands url to the platform opener without waiting for it.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// buttonFor returns the configured button and its current target.
func (m Model) buttonFor(idx int) (config.LinkButton, state.LinkTarget, bool) {
	if idx < 0 || idx >= len(m.buttons) {
		return config.LinkButton{}, state.LinkTarget{}, false
	}
	b := m.buttons[idx]
	target, ok := m.snapshot.Link(b.ID)
	if !ok {
		target = state.LinkTarget{ID: b.ID, Reason: "not configured"}
	}
	return b, target, true
}

// activateLink opens button idx, or reports why it cannot.
func (m Model) activateLink(idx int) (Model, tea.Cmd) {
	b, target, ok := m.buttonFor(idx)
	if !ok {
		return m, nil
	}
	m.focus = idx + 1
	if !target.Available {
		m.logger.Info("link unavailable", zap.String("id", b.ID), zap.String("reason", target.Reason))
		return m.setStatus(fmt.Sprintf("%s is unavailable: %s", b.Label, target.Reason), statusWarn)
	}
	m.logger.Info("opening link", zap.String("id", b.ID), zap.String("url", target.URL))
	open := m.opener
	url := target.URL
	next, clear := m.setStatus("Opening "+b.Label+"...", statusInfo)
	return next, tea.Batch(clear, func() tea.Msg {
		return linkActionMsg{label: b.Label, action: "open", err: open(url)}
	})
}

// copyLink puts the focused button's URL on the clipboard.
func (m Model) copyLink() (Model, tea.Cmd) {
	b, target, ok := m.buttonFor(m.focus - 1)
	if !ok {
		return m.setStatus("Focus a link to copy it", statusInfo)
	}
	if !target.Available {
		return m.setStatus(fmt.Sprintf("%s is unavailable: %s", b.Label, target.Reason), statusWarn)
	}
	write := m.copier
	url := target.URL
	return m, func() tea.Msg {
		return linkActionMsg{label: b.Label, action: "copy", err: write(url)}
	}
}

func (m Model) handleLinkAction(msg linkActionMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("link action failed",
			zap.String("label", msg.label),
			zap.String("action", msg.action),
			zap.Error(msg.err))
		return m.setStatus(fmt.Sprintf("Could not %s %s: %v", msg.action, msg.label, msg.err), statusError)
	}
	if msg.action == "copy" {
		return m.setStatus(msg.label+" link copied", statusOK)
	}
	return m, nil
}

// renderLinks renders the social buttons in a row, or a column when narrow.
func (m Model) renderLinks() string {
	styles := m.theme.Styles()
	cards := make([]string, 0, len(m.buttons))
	for i, b := range m.buttons {
		_, target, _ := m.buttonFor(i)

		var label string
		switch {
		case m.snapshot.LinksStatus == state.Loading:
			label = styles.FaintText.Render(b.Label)
		case target.Available:
			label = styles.Text.Render(b.Label)
		default:
			label = styles.FaintText.Strikethrough(true).Render(b.Label)
		}
		text := styles.AccentText.Render(fmt.Sprintf("%d", i+1)) + " " + label

		card := styles.Card
		if m.focus == i+1 {
			card = styles.CardFocus
		}
		cards = append(cards, card.Render(text))
	}
	if m.width > 0 && m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Center, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// focusedURL is shown under the buttons for the focused link.
func (m Model) focusedURL() string {
	b, target, ok := m.buttonFor(m.focus - 1)
	if !ok {
		return ""
	}
	styles := m.theme.Styles()
	if !target.Available {
		return styles.WarningText.Render(truncate(b.Label+": "+target.Reason, m.contentWidth()))
	}
	return styles.InfoText.Underline(m.theme.Effects).Render(truncate(strings.TrimSpace(target.URL), m.contentWidth()))
}

func defaultCopier(text string) error {
	return clipboard.WriteAll(text)
}
