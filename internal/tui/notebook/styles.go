package notebook

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorSelected = lipgloss.Color("39")  // blue
	colorPinned   = lipgloss.Color("214") // orange
	colorMuted    = lipgloss.Color("242") // gray
	colorWhite    = lipgloss.Color("15")
	colorError    = lipgloss.Color("196") // bright red
)

// Styles for the notebook TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(colorWhite).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	pinnedMarkStyle = lipgloss.NewStyle().
			Foreground(colorPinned).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorSelected)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	editorFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSelected).
				Padding(0, 1)
)
