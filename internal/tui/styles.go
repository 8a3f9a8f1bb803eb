// Package tui implements the Bubble Tea board for exploring the feedback
// hierarchy: themes, sub-themes, customer asks, and their mentions.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/triage/internal/core/styles"
)

const (
	iconDot     = "•"
	iconLocked  = "󰌾"
	iconSpark   = "󱙺" // AI-generated marker
	iconMention = ""
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorSurface).
			Padding(0, 1)

	paneActiveStyle = paneStyle.
			BorderForeground(styles.ColorPrimary)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorPrimary)

	rowStyle = lipgloss.NewStyle().
			Foreground(styles.ColorForeground)

	rowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.ColorPrimary).
				Background(styles.ColorSurface)

	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.ColorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorError)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(styles.ColorMuted)

	searchBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorSecondary).
			Padding(0, 1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(styles.ColorSecondary)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorSecondary).
			Padding(0, 1)
)

// askStatusStyle colors an ask's triage status badge.
func askStatusStyle(status string) lipgloss.Style {
	switch status {
	case "planned":
		return lipgloss.NewStyle().Foreground(styles.ColorSecondary)
	case "shipped":
		return lipgloss.NewStyle().Foreground(styles.ColorSuccess)
	case "declined":
		return lipgloss.NewStyle().Foreground(styles.ColorMuted)
	default: // open
		return lipgloss.NewStyle().Foreground(styles.ColorWarning)
	}
}
