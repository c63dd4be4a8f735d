package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// avatarArt is the clickable profile picture.
var avatarArt = []string{
	"  .-----.  ",
	" /  o o  \\ ",
	"|    ^    |",
	" \\  \\_/  / ",
	"  '-----'  ",
}

// renderAvatar draws the avatar card. It highlights while focused and, with
// effects on, after each click while the level widget is showing.
func (m Model) renderAvatar() string {
	styles := m.theme.Styles()
	card := styles.Card
	if m.focus == 0 {
		card = styles.CardFocus
	}

	face := styles.AccentText
	if m.theme.Effects && m.level.visible {
		face = face.Foreground(lipgloss.Color(m.theme.Shimmer))
	}
	art := face.Render(strings.Join(avatarArt, "\n"))
	caption := styles.FaintText.Render("space to click")
	return card.Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Center, art, caption))
}
