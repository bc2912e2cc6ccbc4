package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
	"github.com/Iron-Ham/townreport/internal/tui/view"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	body := m.renderMain()
	if m.nav.Active() == navigator.Title {
		return body
	}
	return body + "\n" + view.NewMenuBarView(m.catalog, m.nav.Registry()).Render(m.width)
}

// renderMain renders everything above the menu bar: the active screen, the
// pending notice and the key help.
func (m Model) renderMain() string {
	parts := []string{m.renderScreen()}
	if n, ok := m.Notice(); ok {
		parts = append(parts, (&view.NoticeView{Catalog: m.catalog, Notice: n}).Render(m.width))
	}
	parts = append(parts, styles.HelpBar.Render(m.help.View(m.keys.ForView(m.nav.Active()))))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderScreen() string {
	switch m.nav.Active() {
	case navigator.Title:
		return (&view.TitleView{Catalog: m.catalog}).Render(m.width)
	case navigator.Home:
		return (&view.HomeView{
			Catalog: m.catalog,
			Name:    m.state.Profile.Name,
			Points:  m.state.Points,
		}).Render(m.width)
	case navigator.Camera:
		return (&view.CameraView{
			Catalog: m.catalog,
			Capture: m.state.Capture,
			Failed:  m.cameraFailed,
		}).Render(m.width)
	case navigator.Map:
		return (&view.MapView{
			Catalog:  m.catalog,
			Map:      m.state.Map,
			Enabled:  m.mapper.Enabled(),
			Locating: m.locating,
		}).Render(m.width)
	case navigator.Reports:
		vp := m.reports
		return (&view.ReportsView{
			Catalog:  m.catalog,
			Reports:  m.state.Reports,
			Now:      time.Now(),
			Viewport: &vp,
		}).Render(m.width)
	case navigator.Profile:
		pv := &view.ProfileView{
			Catalog: m.catalog,
			Profile: m.state.Profile,
			Points:  m.state.Points,
		}
		if m.renaming {
			pv.Prompt = m.nameInput.View()
		}
		if m.picking {
			pv.Picker = m.picker.View()
		}
		return pv.Render(m.width)
	}
	return ""
}
