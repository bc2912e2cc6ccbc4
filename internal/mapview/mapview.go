// Package mapview implements the terminal map widget: a projected grid
// around a center coordinate with a movable cursor and at most one marker.
package mapview

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/geo"
)

// Zoom bounds.
const (
	MinZoom = 1
	MaxZoom = 20
)

// cellPixels is the nominal tile-pixel width of one terminal cell.
const cellPixels = 16

const (
	MarkerRune = '◆'
	CursorRune = '+'
	CenterRune = '·'
)

// Marker is a placed pin.
type Marker struct {
	Position geo.Coordinate
}

// Styles controls how the grid is drawn.
type Styles struct {
	Grid   lipgloss.Style
	Center lipgloss.Style
	Cursor lipgloss.Style
	Marker lipgloss.Style
}

// Map is the map widget. The zero value is not usable; call New.
type Map struct {
	center geo.Coordinate
	zoom   int
	marker *Marker

	width, height int
	cursor        canvas.Point
}

// New creates a map centered on center at zoom.
func New(center geo.Coordinate, zoom int) *Map {
	m := &Map{center: center, zoom: clampZoom(zoom)}
	m.Resize(40, 12)
	m.cursor = m.middle()
	return m
}

func clampZoom(z int) int {
	return max(MinZoom, min(MaxZoom, z))
}

// Center returns the current center.
func (m *Map) Center() geo.Coordinate { return m.center }

// SetCenter re-centers the map and moves the cursor to the middle.
func (m *Map) SetCenter(c geo.Coordinate) {
	m.center = c
	m.cursor = m.middle()
}

// Zoom returns the zoom level.
func (m *Map) Zoom() int { return m.zoom }

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (m *Map) SetZoom(z int) { m.zoom = clampZoom(z) }

// Size returns the grid size in cells.
func (m *Map) Size() (int, int) { return m.width, m.height }

// Resize sets the grid size in cells, keeping the cursor inside it.
func (m *Map) Resize(w, h int) {
	m.width, m.height = max(1, w), max(1, h)
	m.cursor = m.clamp(m.cursor)
}

// Marker returns the placed marker, or nil.
func (m *Map) Marker() *Marker { return m.marker }

// PlaceMarker puts a marker at c, replacing any existing one.
func (m *Map) PlaceMarker(c geo.Coordinate) *Marker {
	m.marker = &Marker{Position: c}
	return m.marker
}

// ClearMarker detaches the marker. It returns the removed marker, if any.
func (m *Map) ClearMarker() (Marker, bool) {
	if m.marker == nil {
		return Marker{}, false
	}
	old := *m.marker
	m.marker = nil
	return old, true
}

// Cursor returns the cursor cell.
func (m *Map) Cursor() canvas.Point { return m.cursor }

// MoveCursor shifts the cursor by dx, dy cells, staying on the grid.
func (m *Map) MoveCursor(dx, dy int) {
	m.cursor = m.clamp(canvas.Point{X: m.cursor.X + dx, Y: m.cursor.Y + dy})
}

// SetCursor moves the cursor to a cell, staying on the grid.
func (m *Map) SetCursor(x, y int) {
	m.cursor = m.clamp(canvas.Point{X: x, Y: y})
}

// ClickCursor places a marker at the cursor's coordinate.
func (m *Map) ClickCursor() *Marker {
	return m.PlaceMarker(m.CellToCoord(m.cursor.X, m.cursor.Y))
}

// ClickCell moves the cursor to the cell and places a marker there.
func (m *Map) ClickCell(x, y int) *Marker {
	m.SetCursor(x, y)
	return m.ClickCursor()
}

func (m *Map) middle() canvas.Point {
	return canvas.Point{X: m.width / 2, Y: m.height / 2}
}

func (m *Map) clamp(p canvas.Point) canvas.Point {
	p.X = max(0, min(m.width-1, p.X))
	p.Y = max(0, min(m.height-1, p.Y))
	return p
}

// degreesPerCell returns the longitude and latitude span of one cell.
// Cells are about twice as tall as wide, and latitude spans shrink with
// cos(lat) as in Web Mercator.
func (m *Map) degreesPerCell() (float64, float64) {
	lng := 360 / math.Exp2(float64(m.zoom)) / (256 / cellPixels)
	lat := lng * 2 * math.Cos(m.center.Lat*math.Pi/180)
	return lng, lat
}

// CellToCoord converts a grid cell to a coordinate.
func (m *Map) CellToCoord(x, y int) geo.Coordinate {
	dLng, dLat := m.degreesPerCell()
	mid := m.middle()
	return geo.Coordinate{
		Lat: m.center.Lat - float64(y-mid.Y)*dLat,
		Lng: m.center.Lng + float64(x-mid.X)*dLng,
	}
}

// CoordToCell converts a coordinate to the nearest grid cell. ok is false
// when the coordinate falls outside the grid.
func (m *Map) CoordToCell(c geo.Coordinate) (x, y int, ok bool) {
	dLng, dLat := m.degreesPerCell()
	mid := m.middle()
	x = mid.X + int(math.Round((c.Lng-m.center.Lng)/dLng))
	y = mid.Y - int(math.Round((c.Lat-m.center.Lat)/dLat))
	ok = x >= 0 && x < m.width && y >= 0 && y < m.height
	return x, y, ok
}

// View renders the grid.
func (m *Map) View(st Styles) string {
	cv := canvas.New(m.width, m.height)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r := ' '
			if x%4 == 0 && y%2 == 0 {
				r = '.'
			}
			cv.SetCell(canvas.Point{X: x, Y: y}, canvas.Cell{Rune: r, Style: st.Grid})
		}
	}
	cv.SetCell(m.middle(), canvas.Cell{Rune: CenterRune, Style: st.Center})
	cv.SetCell(m.cursor, canvas.Cell{Rune: CursorRune, Style: st.Cursor})

	if m.marker != nil {
		if x, y, ok := m.CoordToCell(m.marker.Position); ok {
			cv.SetCell(canvas.Point{X: x, Y: y}, canvas.Cell{Rune: MarkerRune, Style: st.Marker})
		}
	}
	return cv.View()
}
