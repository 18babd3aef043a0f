// Package theme holds the lipgloss styles shared by the CLI commands.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette, drawn from ink and vermilion
var (
	Primary   = lipgloss.Color("#E5484D") // Vermilion
	Secondary = lipgloss.Color("#3E63DD") // Indigo
	Accent    = lipgloss.Color("#F5A524") // Gold
	Success   = lipgloss.Color("#30A46C") // Green
	Error     = lipgloss.Color("#E5484D") // Vermilion
	Text      = lipgloss.Color("#EDEDED")
	TextDim   = lipgloss.Color("#8B8D98")
	Border    = lipgloss.Color("#3A3A40")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Kana renders a large Japanese glyph or sentence.
	Kana = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Width(6).
		Align(lipgloss.Center)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Success)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// Rule is a horizontal separator of width n.
func Rule(n int) string {
	return Hint.Render(strings.Repeat("─", n))
}

// Bar renders ratio (0..1) as a width-cell bar followed by a percentage.
func Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return ProgressFilled.Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", ratio*100)
}

// Verdict renders the result line shown after an answer.
func Verdict(ok bool) string {
	if ok {
		return Correct.Render("✓ Correct!")
	}
	return Incorrect.Render("✗ Not quite.")
}
