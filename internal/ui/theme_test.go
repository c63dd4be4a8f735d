package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/homepage/internal/prefs"
)

func TestForAppearance(t *testing.T) {
	cases := []struct {
		name      string
		in        prefs.Appearance
		wantName  string
		wantFrame lipgloss.Border
	}{
		{"light_plain", prefs.Appearance{}, ThemeLight, lipgloss.NormalBorder()},
		{"dark_effects", prefs.Appearance{Dark: true, Effects: true}, ThemeDark, lipgloss.RoundedBorder()},
		{"light_effects", prefs.Appearance{Effects: true, Motion: true}, ThemeLight, lipgloss.RoundedBorder()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			th := ForAppearance(tc.in)
			if th.Name != tc.wantName {
				t.Fatalf("Name = %q, want %q", th.Name, tc.wantName)
			}
			if th.Frame() != tc.wantFrame {
				t.Fatalf("Frame = %+v, want %+v", th.Frame(), tc.wantFrame)
			}
			if th.Motion != tc.in.Motion || th.Effects != tc.in.Effects {
				t.Fatalf("flags = motion %v effects %v, want %v %v", th.Motion, th.Effects, tc.in.Motion, tc.in.Effects)
			}
		})
	}
}

func TestGetThemeDefaultsToLight(t *testing.T) {
	if got := GetTheme("Solarized"); got.Name != ThemeLight {
		t.Fatalf("GetTheme unknown = %q, want %q", got.Name, ThemeLight)
	}
}

func TestThemesDifferInBackground(t *testing.T) {
	if GetTheme(ThemeLight).Background == GetTheme(ThemeDark).Background {
		t.Fatalf("light and dark share a background")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  hello  ", 10); got != "hello" {
		t.Fatalf("truncate trims = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("truncate limit<=3 = %q, want abc", got)
	}
	if got := truncate("homepage", 6); got != "hom..." {
		t.Fatalf("truncate = %q, want hom...", got)
	}
}
