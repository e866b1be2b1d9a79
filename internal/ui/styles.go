package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent = lipgloss.Color("#4ecca3")
	ColorDanger = lipgloss.Color("#e94560")
	ColorDim    = lipgloss.Color("#555555")
	ColorShade  = lipgloss.Color("#1c1c2e")
)

// Text styles
var (
	AccentText = lipgloss.NewStyle().Foreground(ColorAccent)
	DimText    = lipgloss.NewStyle().Foreground(ColorDim)
)

// Viewer line styles
var (
	HeaderLineStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	RowEvenStyle    = lipgloss.NewStyle()
	RowOddStyle     = lipgloss.NewStyle().Background(ColorShade)
	CursorLineStyle = lipgloss.NewStyle().Reverse(true)
	PinnedRowStyle  = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true)
	TruncatedStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
)

// Search styles
var (
	SearchLabel = lipgloss.NewStyle().Foreground(ColorAccent)
	SearchInput = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// Status bar
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#cccccc")).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorDanger).
				Padding(0, 1)

	StatusTruncStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorDanger).
				Bold(true).
				Padding(0, 1)
)
