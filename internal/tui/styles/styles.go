// Package styles holds the lipgloss palette and shared styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/mapview"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#34D399") // Emerald
	SecondaryColor = lipgloss.Color("#60A5FA") // Blue
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)
	PinColor       = lipgloss.Color("#F472B6") // Pink

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Menu bar
	MenuActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(SurfaceColor).
			Background(PrimaryColor).
			Padding(0, 2)

	MenuInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	MenuBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(BorderColor)

	// Buttons rendered inline in screens
	Button = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	ButtonKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	// Notice overlay
	NoticeBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 3)

	NoticeInfo    = NoticeBox.BorderForeground(PrimaryColor)
	NoticeWarning = NoticeBox.BorderForeground(WarningColor)
	NoticeError   = NoticeBox.BorderForeground(ErrorColor)

	// Points badge
	Points = lipgloss.NewStyle().
		Bold(true).
		Foreground(WarningColor)

	// Reports list
	ReportTime = lipgloss.NewStyle().Foreground(MutedColor)
	ReportText = lipgloss.NewStyle().Foreground(TextColor)
)

// MapStyles returns the styles used to draw the map grid.
func MapStyles() mapview.Styles {
	return mapview.Styles{
		Grid:   lipgloss.NewStyle().Foreground(BorderColor),
		Center: lipgloss.NewStyle().Foreground(MutedColor),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(SecondaryColor),
		Marker: lipgloss.NewStyle().Bold(true).Foreground(PinColor),
	}
}
