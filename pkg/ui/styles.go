package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)
	subHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("153"))

	systemStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246"))
	userLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	botLabel    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	userBubble  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)
	botBubble = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1)
	focusedCardStyle = cardStyle.BorderForeground(lipgloss.Color("27"))
	productNameStyle = lipgloss.NewStyle().Bold(true)
	priceStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	linkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	activeDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
	dotStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	navStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
