package ui

import "github.com/charmbracelet/lipgloss"

// Palette of the printed guide, kept for the terminal.
var (
	colorRed      = lipgloss.Color("#8C1515")
	colorOrange   = lipgloss.Color("#BF5700")
	colorCharcoal = lipgloss.Color("#1A1A1A")
	colorGold     = lipgloss.Color("#D4A853")
	colorRose     = lipgloss.Color("#C4898A")
	colorMuted    = lipgloss.Color("244")
	colorFaint    = lipgloss.Color("250")
	colorLight    = lipgloss.Color("15")
)

var (
	numberStyle   = lipgloss.NewStyle().Foreground(colorRose).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	textStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	insightStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorRed).
			Padding(0, 1)
	insightLabelStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Padding(0, 1)
	focusedCardStyle = cardStyle.
				BorderForeground(colorRed)
	termStyle        = lipgloss.NewStyle().Bold(true)
	definitionStyle  = lipgloss.NewStyle()
	translationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	exampleStyle     = lipgloss.NewStyle().Foreground(colorRed).Italic(true)
	dotStyle         = lipgloss.NewStyle().Foreground(colorRed)
	favoriteOnStyle  = lipgloss.NewStyle().Foreground(colorGold)
	reviewedOnStyle  = lipgloss.NewStyle().Foreground(colorRed)
	markOffStyle     = lipgloss.NewStyle().Foreground(colorFaint)
	matchStyle       = lipgloss.NewStyle().
				Background(lipgloss.Color("226")). // Bright yellow
				Foreground(lipgloss.Color("232"))  // Dark gray

	diagramTitleStyle = lipgloss.NewStyle().Bold(true)
	flowStyle         = lipgloss.NewStyle().Foreground(colorRed).Faint(true)
	factLabelStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	tileLabelStyle    = lipgloss.NewStyle().Foreground(colorRed)
	tileStyle         = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorFaint).
				Padding(0, 1)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(colorFaint).
			Padding(0, 1)
	courseStyle        = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	courseSubStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	activeSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorLight).
				Background(colorRed)
	sectionStyle = lipgloss.NewStyle().Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorFaint)
	printButtonStyle  = lipgloss.NewStyle().Foreground(colorLight).Background(colorRed).Padding(0, 1)
	exportButtonStyle = lipgloss.NewStyle().Foreground(colorLight).Background(colorOrange).Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Height(1).
			Bold(true).
			Foreground(colorLight).
			Background(colorCharcoal)
	statusErrStyle = statusStyle.Background(colorRed)
)
