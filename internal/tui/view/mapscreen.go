package view

import (
	"strings"

	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/mapview"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// MapView renders the map report screen.
type MapView struct {
	Catalog *i18n.Catalog
	Map     *mapview.Map
	Enabled bool
	// Locating is set while a geolocation lookup is in flight.
	Locating bool
}

// MapOrigin is the offset of the map grid from the top-left corner of the
// rendered screen, past the box border and padding and the heading.
var MapOrigin = struct{ X, Y int }{X: 3, Y: 5}

// Render renders the map grid with the pin status and report button.
func (v *MapView) Render(width int) string {
	var b strings.Builder
	b.WriteString(heading(v.Catalog.T("map.heading"), width))
	b.WriteString("\n")

	if !v.Enabled || v.Map == nil {
		b.WriteString(styles.Warning.Render(v.Catalog.T("map.disabled")))
		return styles.ContentBox.Width(width - 4).Render(b.String())
	}

	b.WriteString(v.Map.View(styles.MapStyles()))
	b.WriteString("\n")

	if v.Locating {
		b.WriteString(styles.Muted.Render(v.Catalog.T("map.locating")))
	} else {
		b.WriteString(styles.Muted.Render(v.Catalog.T("map.hint")))
	}
	b.WriteString("\n")

	if m := v.Map.Marker(); m != nil {
		b.WriteString(pinText(v.Catalog.Tf("map.pin", map[string]any{"Coord": m.Position.String()})))
	} else {
		b.WriteString(styles.Muted.Render(v.Catalog.T("map.no_pin_yet")))
	}
	b.WriteString("\n\n")
	b.WriteString(renderButton("r", v.Catalog.T("map.report")))

	return styles.ContentBox.Width(width - 4).Render(b.String())
}

func pinText(s string) string {
	return styles.Text.Foreground(styles.PinColor).Render(s)
}
