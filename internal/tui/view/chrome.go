package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/handler"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// MenuBarView renders the bottom menu from the registry's menu entries.
type MenuBarView struct {
	Catalog *i18n.Catalog
	Entries []*navigator.MenuEntry
}

// NewMenuBarView creates a menu bar for reg.
func NewMenuBarView(cat *i18n.Catalog, reg *navigator.Registry) *MenuBarView {
	return &MenuBarView{Catalog: cat, Entries: reg.Menu()}
}

// Render draws one tab per entry, highlighting the active one.
func (v *MenuBarView) Render(width int) string {
	tabs := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		label := e.Key + " " + v.Catalog.T(e.LabelID)
		if e.Active {
			tabs = append(tabs, styles.MenuActive.Render(label))
		} else {
			tabs = append(tabs, styles.MenuInactive.Render(label))
		}
	}
	return styles.MenuBar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// HitTest returns the menu entry under column x of the rendered bar.
func (v *MenuBarView) HitTest(x int) (*navigator.MenuEntry, bool) {
	offset := 0
	for _, e := range v.Entries {
		label := e.Key + " " + v.Catalog.T(e.LabelID)
		// Active and inactive tabs share the same padding.
		w := lipgloss.Width(styles.MenuInactive.Render(label))
		if x >= offset && x < offset+w {
			return e, true
		}
		offset += w
	}
	return nil, false
}

// NoticeView renders a blocking notice that must be dismissed.
type NoticeView struct {
	Catalog *i18n.Catalog
	Notice  handler.Notice
}

// Render draws the notice box, or "" when there is nothing to show.
func (v *NoticeView) Render(width int) string {
	if v.Notice.Empty() {
		return ""
	}
	box := styles.NoticeInfo
	switch v.Notice.Level {
	case handler.LevelWarning:
		box = styles.NoticeWarning
	case handler.LevelError:
		box = styles.NoticeError
	}

	var b strings.Builder
	b.WriteString(styles.Text.Render(v.Notice.Message))
	b.WriteString("\n\n")
	b.WriteString(renderButton("enter", v.Catalog.T("common.dismiss")))

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	return box.MaxWidth(maxWidth).Render(b.String())
}

// renderButton draws an inline button with its key hint.
func renderButton(keyHint, label string) string {
	return styles.ButtonKey.Render("["+keyHint+"]") + " " + styles.Button.Render(label)
}

// heading renders a screen heading sized to the inside of a content box.
func heading(text string, width int) string {
	w := width - 8
	if w < 1 {
		w = 1
	}
	return styles.Header.Width(w).Render(text)
}
