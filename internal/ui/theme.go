package ui

import "github.com/charmbracelet/lipgloss"

// Gruvbox-flavored palette, adaptive for light and dark terminals.
var (
	colorGreen   = lipgloss.AdaptiveColor{Light: "#79740E", Dark: "#B8BB26"}
	colorYellow  = lipgloss.AdaptiveColor{Light: "#B57614", Dark: "#FABD2F"}
	colorRed     = lipgloss.AdaptiveColor{Light: "#9D0006", Dark: "#FB4934"}
	colorBlue    = lipgloss.AdaptiveColor{Light: "#076678", Dark: "#83A598"}
	colorMagenta = lipgloss.AdaptiveColor{Light: "#8F3F71", Dark: "#D3869B"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#7C6F64", Dark: "#A89984"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D5C4A1", Dark: "#504945"}
)

// Shared styles for the dashboard panes.
var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(colorMuted)
	styleOK       = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn     = lipgloss.NewStyle().Foreground(colorYellow)
	styleAlert    = lipgloss.NewStyle().Foreground(colorRed)
	styleBranch   = lipgloss.NewStyle().Foreground(colorBlue)
	styleClient   = lipgloss.NewStyle().Foreground(colorMagenta)
	styleSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1D2021")).
			Background(colorGreen)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	stylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGreen).
				Padding(0, 1)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(1, 2)

	styleStatusBar = lipgloss.NewStyle().Foreground(colorMuted)
	styleTabActive = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleTab       = lipgloss.NewStyle().Foreground(colorMuted)
)
