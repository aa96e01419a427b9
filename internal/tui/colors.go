package tui

import "github.com/charmbracelet/lipgloss"

// Colors mirror the generated workbook: yellow text on a dark grey band.
const (
	ColorAccent  = "#FFFF00"
	ColorBand    = "#404040"
	ColorText    = "#E6EAF2"
	ColorMuted   = "240"
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
)

// TitleStyle is the dark band used for headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color(ColorAccent)).
	Background(lipgloss.Color(ColorBand)).
	Padding(0, 1)

var (
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText))
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	SuccessStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSuccess))
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorError))
)

// Field renders an aligned "label value" line.
func Field(label, value string) string {
	return LabelStyle.Width(14).Render(label) + ValueStyle.Render(value)
}
