package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// TitleView renders the splash screen shown at startup.
type TitleView struct {
	Catalog *i18n.Catalog
}

// Render renders the title screen centered in width.
func (v *TitleView) Render(width int) string {
	var b strings.Builder

	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.PrimaryColor).
		Render(v.Catalog.T("app.name"))

	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(v.Catalog.T("title.tagline")))
	b.WriteString("\n\n")
	b.WriteString(renderButton("enter", v.Catalog.T("title.start")))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		styles.ContentBox.Render(lipgloss.JoinVertical(lipgloss.Center, strings.Split(b.String(), "\n")...)))
}

// HomeView renders the landing screen after the title.
type HomeView struct {
	Catalog *i18n.Catalog
	Name    string
	Points  int
}

// Render renders the home screen with the given width.
func (v *HomeView) Render(width int) string {
	var b strings.Builder

	b.WriteString(heading(v.Catalog.Tf("home.welcome", map[string]any{"Name": v.Name}), width))
	b.WriteString("\n")
	b.WriteString(styles.Points.Render(v.Catalog.Tf("home.points", map[string]any{"Points": v.Points})))
	b.WriteString("\n\n")
	b.WriteString(renderButton("enter", v.Catalog.T("home.start_report")))

	return styles.ContentBox.Width(width - 4).Render(b.String())
}
