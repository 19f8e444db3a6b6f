package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorNavy  = lipgloss.Color("#1E2A4A")
	ColorBlue  = lipgloss.Color("#4FA3F7")
	ColorGreen = lipgloss.Color("#49E209")
	ColorGray  = lipgloss.Color("#6C7086")
	ColorWhite = lipgloss.Color("#F5F5F5")
)

var (
	sidebarHeadingStyle = lipgloss.NewStyle().Bold(true)
	activeLinkStyle     = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	focusedLinkStyle    = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Underline(true)
	mutedStyle          = lipgloss.NewStyle().Foreground(ColorGray)
	sectionTitleStyle   = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	statusStyle         = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)
)
