package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDiagnosticsDisabledWithoutLogFile(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m, cmd := press(t, m, runeKey("L"))
	if cmd != nil {
		t.Fatalf("expected no load command without a log path")
	}
	if !strings.Contains(m.View(), "File logging is disabled.") {
		t.Fatalf("view missing disabled notice")
	}
}

func TestDiagnosticsShowsLogTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homepage.log")
	lines := strings.Join([]string{
		`{"level":"info","ts":"2026-01-02T10:11:12.000Z","msg":"document loaded","resource":"link.xml"}`,
		`{"level":"warn","ts":"2026-01-02T10:11:13.000Z","msg":"document fetch failed, retrying","attempt":1}`,
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	h := newHarness(t)
	m := h.model(t)
	m.logPath = path

	m, cmd := press(t, m, runeKey("L"))
	if cmd == nil {
		t.Fatalf("expected load command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"document loaded", "document fetch failed, retrying"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil {
		t.Fatalf("diagnostics still open after esc")
	}
}
