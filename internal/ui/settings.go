package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/homepage/internal/prefs"
)

// appearanceMsg carries a new resolved appearance, from a settings toggle or
// from the system theme signal.
type appearanceMsg prefs.Appearance

type settingItem struct {
	key         prefs.Key
	label       string
	description string
}

var settingItems = []settingItem{
	{
		key:         prefs.UseSystemDefault,
		label:       "Use system theme",
		description: "Follow the desktop light/dark setting and switch live when it changes.",
	},
	{
		key:         prefs.DarkMode,
		label:       "Dark mode",
		description: "Use the dark palette. Locked while the system theme is followed.",
	},
	{
		key:         prefs.BackgroundMotion,
		label:       "Background motion",
		description: "Animate the banner shimmer and loading spinner.",
	},
	{
		key:         prefs.VisualEffects,
		label:       "Visual effects",
		description: "Gradient level bar and rounded borders.",
	},
}

// settingsModal lists the four preferences and toggles them through the
// theme controller.
type settingsModal struct {
	ctl     *prefs.ThemeController
	cursor  int
	message string
}

func newSettingsModal(ctl *prefs.ThemeController) *settingsModal {
	return &settingsModal{ctl: ctl}
}

func (s *settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Settings), key.Matches(km, keys.Quit):
		return s, nil, true
	case key.Matches(km, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		s.message = ""
	case key.Matches(km, keys.Down):
		if s.cursor < len(settingItems)-1 {
			s.cursor++
		}
		s.message = ""
	case key.Matches(km, keys.Toggle):
		return s, s.toggle(), false
	}
	return s, nil, false
}

func (s *settingsModal) toggle() tea.Cmd {
	if s.ctl == nil {
		return nil
	}
	item := settingItems[s.cursor]
	a, err := s.ctl.Toggle(item.key)
	switch {
	case errors.Is(err, prefs.ErrControlLocked):
		s.message = "Dark mode follows the system theme. Turn that off first."
		return nil
	case prefs.IsStorageError(err):
		s.message = "Saved for this session only: storage is unavailable."
	case err != nil:
		s.message = err.Error()
	default:
		s.message = ""
	}
	return func() tea.Msg { return appearanceMsg(a) }
}

func (s *settingsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var set prefs.PreferenceSet
	var a prefs.Appearance
	if s.ctl != nil {
		set = s.ctl.Preferences()
		a = s.ctl.Appearance()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, item := range settingItems {
		on := set.Get(item.key).On(item.key)
		locked := item.key == prefs.DarkMode && a.DarkControlLocked
		if locked {
			on = a.Dark
		}

		box := "[ ]"
		if on {
			box = "[x]"
		}
		boxStyle := styles.AccentText
		labelStyle := styles.Text
		if locked {
			boxStyle = styles.FaintText
			labelStyle = styles.FaintText
			box = "[-]"
		}

		cursor := "  "
		if i == s.cursor {
			cursor = styles.AccentText.Render("> ")
			labelStyle = labelStyle.Bold(true)
		}
		b.WriteString(cursor + boxStyle.Render(box) + " " + labelStyle.Render(item.label))
		if locked {
			b.WriteString(styles.FaintText.Render("  (system)"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	desc := lipgloss.NewStyle().Width(ModalWidth - 6)
	b.WriteString(desc.Inherit(styles.MutedText).Render(settingItems[s.cursor].description))
	if s.message != "" {
		b.WriteString("\n\n")
		b.WriteString(desc.Inherit(styles.WarningText).Render(s.message))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k move  space toggle  esc close"))

	return placeModal(theme, width, height, ModalWidth, b.String())
}
