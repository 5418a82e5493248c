package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	pinFg     = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	popoverStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentFg)

	pinStyle       = lipgloss.NewStyle().Foreground(pinFg).Bold(true)
	aggregateStyle = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(pinFg).Bold(true)
)

// markerStyle picks the style for an annotation's marker. A single item may
// carry its own colour.
func markerStyle(a *annotation, selected bool) lipgloss.Style {
	switch {
	case selected:
		return selectedStyle
	case a.IsAggregate():
		return aggregateStyle
	}
	if c := a.Members()[0].DisplayStyle().Color; c != "" {
		return pinStyle.Foreground(lipgloss.Color(c))
	}
	return pinStyle
}
