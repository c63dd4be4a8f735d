package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/homepage/internal/prefs"
)

// levelState is the on-screen level widget. It lags storage only while a
// level-up is being shown.
type levelState struct {
	visible bool
	display prefs.LevelProgress

	// Timer generations. A timer message whose generation no longer matches
	// was superseded and is dropped.
	hideGen  int
	resetGen int
	resetDue bool
}

type levelHideMsg struct{ gen int }

type levelResetMsg struct{ gen int }

func levelHideCmd(gen int) tea.Cmd {
	return tea.Tick(LevelHideDelay, func(time.Time) tea.Msg {
		return levelHideMsg{gen: gen}
	})
}

func levelResetCmd(gen int) tea.Cmd {
	return tea.Tick(LevelResetDelay, func(time.Time) tea.Msg {
		return levelResetMsg{gen: gen}
	})
}

// show makes the widget visible and restarts the hide countdown.
func (l *levelState) show() tea.Cmd {
	l.visible = true
	l.hideGen++
	return levelHideCmd(l.hideGen)
}

// record applies a click. A newer click always cancels a pending reset so
// rapid level-ups collapse into the latest state.
func (l *levelState) record(in prefs.Interaction) tea.Cmd {
	l.display = in.Display
	l.resetGen++
	l.resetDue = false
	cmds := []tea.Cmd{l.show()}
	if in.LeveledUp {
		l.resetDue = true
		cmds = append(cmds, levelResetCmd(l.resetGen))
	}
	return tea.Batch(cmds...)
}

func (l *levelState) hide(msg levelHideMsg) bool {
	if msg.gen != l.hideGen {
		return false
	}
	l.visible = false
	return true
}

func (l *levelState) reset(msg levelResetMsg, stored prefs.LevelProgress) bool {
	if msg.gen != l.resetGen || !l.resetDue {
		return false
	}
	l.resetDue = false
	l.display = stored
	return true
}

// renderLevel renders the label, bar and click count.
func (m Model) renderLevel() string {
	if !m.level.visible {
		return ""
	}
	styles := m.theme.Styles()
	p := m.level.display

	label := styles.AccentText.Bold(true).Render(fmt.Sprintf("Level %d", p.Level))
	bar := m.levelBar.ViewAs(p.Percent())
	count := styles.MutedText.Render(fmt.Sprintf("%d clicks of %d clicks", p.Clicks, prefs.ClicksToLevelUp))

	body := strings.Join([]string{label, bar, count}, "\n")
	return lipgloss.NewStyle().
		Border(m.theme.Frame()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Align(lipgloss.Center).
		Render(body)
}

func newLevelBar(t Theme) progress.Model {
	bar := progress.New(t.ProgressOptions()...)
	bar.EmptyColor = t.Border
	return bar
}
