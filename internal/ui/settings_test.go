package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/homepage/internal/prefs"
	"github.com/five82/homepage/internal/storage"
	"github.com/five82/homepage/internal/systheme"
)

type brokenStore struct{ *storage.MemoryStore }

func (brokenStore) Set(key, value string) error {
	return &storage.Error{Op: "set", Key: key, Err: errors.New("quota exceeded")}
}

func openSettings(t *testing.T, h *harness) Model {
	t.Helper()
	m := h.model(t)
	m, _ = press(t, m, runeKey("s"))
	if _, ok := m.modal.(*settingsModal); !ok {
		t.Fatalf("modal = %T, want *settingsModal", m.modal)
	}
	return m
}

func TestSettingsToggleDarkMode(t *testing.T) {
	h := newHarness(t)
	m := openSettings(t, h)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatalf("expected appearance command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	if m.theme.Name != ThemeDark {
		t.Fatalf("theme = %q, want %q", m.theme.Name, ThemeDark)
	}
	if raw, _, _ := h.kv.Get(string(prefs.DarkMode)); raw != prefs.Enabled.String() {
		t.Fatalf("stored darkMode = %q, want %q", raw, prefs.Enabled.String())
	}
}

func TestSettingsDarkModeLockedWhileFollowingSystem(t *testing.T) {
	h := newHarness(t)
	if err := h.prefs.Set(prefs.UseSystemDefault, prefs.Enabled); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m := openSettings(t, h)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		t.Fatalf("locked toggle produced a command")
	}
	s := m.modal.(*settingsModal)
	if !strings.Contains(s.message, "follows the system theme") {
		t.Fatalf("message = %q", s.message)
	}
	if _, ok, _ := h.kv.Get(string(prefs.DarkMode)); ok {
		t.Fatalf("darkMode was written while locked")
	}
	if view := m.View(); !strings.Contains(view, "(system)") {
		t.Fatalf("view does not mark dark mode as system controlled")
	}
}

func TestSettingsStorageFailureStillApplies(t *testing.T) {
	kv := brokenStore{storage.NewMemory()}
	p := prefs.NewStore(kv, zap.NewNop())
	ctl := prefs.NewThemeController(p, systheme.NewStatic(false), zap.NewNop())
	t.Cleanup(ctl.Close)

	m := New(Options{Prefs: p, Theme: ctl, Appearance: ctl.Start()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)
	m, _ = press(t, m, runeKey("s"))

	// Background motion is the third row.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatalf("expected appearance command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)

	if m.appearance.Motion {
		t.Fatalf("motion still on after toggle")
	}
	s := m.modal.(*settingsModal)
	if !strings.Contains(s.message, "this session only") {
		t.Fatalf("message = %q", s.message)
	}
}

func TestSettingsCloseKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runeKey("s"), runeKey("q")} {
		h := newHarness(t)
		m := openSettings(t, h)
		m, cmd := press(t, m, msg)
		if m.modal != nil {
			t.Fatalf("%s: settings still open", msg)
		}
		if cmd != nil {
			t.Fatalf("%s: closing settings returned a command", msg)
		}
	}
}
