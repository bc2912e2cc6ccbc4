package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// ReportsView renders the list of completed reports, newest first.
type ReportsView struct {
	Catalog *i18n.Catalog
	Reports []session.Report
	Now     time.Time
	// Viewport scrolls the list when set; otherwise every line is drawn.
	Viewport *viewport.Model
}

// Render renders the reports list with the given width.
func (v *ReportsView) Render(width int) string {
	var b strings.Builder
	b.WriteString(heading(v.Catalog.T("reports.heading"), width))
	b.WriteString("\n")

	if len(v.Reports) == 0 {
		b.WriteString(styles.Muted.Render(v.Catalog.T("reports.empty")))
		return styles.ContentBox.Width(width - 4).Render(b.String())
	}

	lines := ReportLines(v.Reports, v.Now, width-8)
	if v.Viewport != nil {
		v.Viewport.Width = width - 8
		v.Viewport.SetContent(lines)
		b.WriteString(v.Viewport.View())
	} else {
		b.WriteString(lines)
	}
	return styles.ContentBox.Width(width - 4).Render(b.String())
}

// ReportLines formats reports one per line as "<timestamp>: <text>" with a
// relative age, truncated to width.
func ReportLines(reports []session.Report, now time.Time, width int) string {
	lines := make([]string, 0, len(reports))
	for _, r := range reports {
		stamp, text, _ := strings.Cut(r.Line(), ": ")
		line := styles.ReportTime.Render(stamp) + ": " +
			styles.ReportText.Render(text) + " " +
			styles.Muted.Render("("+humanize.RelTime(r.CreatedAt, now, "ago", "from now")+")")
		if width > 0 {
			line = ansi.Truncate(line, width, "…")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
