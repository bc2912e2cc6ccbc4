package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/imaging"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// Icon size in terminal cells.
const (
	IconCols = 16
	IconRows = 8
)

// ProfileView renders the profile screen and its edit prompts.
type ProfileView struct {
	Catalog *i18n.Catalog
	Profile session.Profile
	Points  int

	// Prompt holds the rendered name input while renaming.
	Prompt string
	// Picker holds the rendered file picker while choosing an icon.
	Picker string
}

// Render renders the profile with the given width.
func (v *ProfileView) Render(width int) string {
	var b strings.Builder
	b.WriteString(heading(v.Catalog.T("profile.heading"), width))
	b.WriteString("\n")

	icon := styles.Muted.Render(v.Catalog.T("profile.no_icon"))
	if v.Profile.Icon != nil {
		icon = imaging.RenderBlocks(v.Profile.Icon, IconCols, IconRows)
	}

	details := strings.Join([]string{
		styles.Text.Bold(true).Render(v.Catalog.Tf("profile.name", map[string]any{"Name": v.Profile.Name})),
		styles.Points.Render(v.Catalog.Tf("profile.points", map[string]any{"Points": v.Points})),
	}, "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, icon, "  ", details))
	b.WriteString("\n\n")

	switch {
	case v.Prompt != "":
		b.WriteString(styles.Secondary.Render(v.Catalog.T("profile.name_prompt")))
		b.WriteString("\n")
		b.WriteString(v.Prompt)
	case v.Picker != "":
		b.WriteString(styles.Secondary.Render(v.Catalog.T("profile.pick_icon")))
		b.WriteString("\n")
		b.WriteString(v.Picker)
	default:
		b.WriteString(renderButton("n", v.Catalog.T("profile.edit_name")))
		b.WriteString("  ")
		b.WriteString(renderButton("i", v.Catalog.T("profile.change_icon")))
	}

	return styles.ContentBox.Width(width - 4).Render(b.String())
}
