package tui

import "github.com/charmbracelet/lipgloss"

const (
	primaryColor   = "#7C3AED"
	secondaryColor = "#10B981"
	warningColor   = "#F59E0B"
	errorColor     = "#EF4444"
	dimColor       = "#6B7280"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))
)

func bucketStyle(bucket string) lipgloss.Style {
	switch bucket {
	case "excellent", "good":
		return successStyle
	case "fair":
		return warningStyle
	default:
		return errorStyle
	}
}
