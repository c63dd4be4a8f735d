package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/homepage/internal/prefs"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Buttons and cards
	FocusBg    string // Focused element background

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Effects
	Shimmer      string // Moving highlight on the banner
	GradientFrom string // Level bar gradient start
	GradientTo   string // Level bar gradient end

	// Set by ForAppearance.
	Effects bool
	Motion  bool
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(t.Frame()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		CardFocus: lipgloss.NewStyle().
			Border(t.Frame()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.FocusBg)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Logo      lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
}

// Frame is the border used for cards: rounded with visual effects, square
// without.
func (t Theme) Frame() lipgloss.Border {
	if t.Effects {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

// ProgressOptions configures the level bar fill for this theme.
func (t Theme) ProgressOptions() []progress.Option {
	fill := progress.WithSolidFill(t.Accent)
	if t.Effects {
		fill = progress.WithGradient(t.GradientFrom, t.GradientTo)
	}
	return []progress.Option{
		fill,
		progress.WithoutPercentage(),
		progress.WithWidth(LevelBarWidth),
		progress.WithFillCharacters('█', '░'),
	}
}

// Theme definitions

const (
	ThemeLight = "Light"
	ThemeDark  = "Dark"
)

var themes = map[string]Theme{
	ThemeLight: lightTheme(),
	ThemeDark:  darkTheme(),
}

// GetTheme returns a theme by name, defaulting to Light.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return lightTheme()
}

// ForAppearance picks the palette and effect flags for a.
func ForAppearance(a prefs.Appearance) Theme {
	name := ThemeLight
	if a.Dark {
		name = ThemeDark
	}
	t := GetTheme(name)
	t.Effects = a.Effects
	t.Motion = a.Motion
	return t
}

func lightTheme() Theme {
	// Tailwind CSS Slate/Sky palette, light end: https://tailwindcss.com/docs/colors
	return Theme{
		Name: ThemeLight,

		Background: "#f8fafc", // slate-50
		Surface:    "#e2e8f0", // slate-200
		SurfaceAlt: "#f1f5f9", // slate-100
		FocusBg:    "#e0f2fe", // sky-100

		Border:      "#cbd5e1", // slate-300
		BorderFocus: "#0284c7", // sky-600

		Text:    "#0f172a", // slate-900
		Muted:   "#475569", // slate-600
		Faint:   "#94a3b8", // slate-400
		Accent:  "#0284c7", // sky-600
		Success: "#16a34a", // green-600
		Warning: "#d97706", // amber-600
		Danger:  "#dc2626", // red-600
		Info:    "#0891b2", // cyan-600

		Shimmer:      "#7dd3fc", // sky-300
		GradientFrom: "#0ea5e9", // sky-500
		GradientTo:   "#a855f7", // purple-500
	}
}

func darkTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: ThemeDark,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548", // between slate-800 and slate-700

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		Shimmer:      "#f0f9ff", // sky-50
		GradientFrom: "#38bdf8", // sky-400
		GradientTo:   "#c084fc", // purple-400
	}
}
