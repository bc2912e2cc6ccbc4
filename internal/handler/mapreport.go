package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Iron-Ham/townreport/internal/config"
	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/geo"
	"github.com/Iron-Ham/townreport/internal/mapview"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/report"
	"github.com/Iron-Ham/townreport/internal/session"
)

// LocateResult is the outcome of a geolocation request.
type LocateResult struct {
	Generation uint64
	Position   geo.Coordinate
	Err        error
}

// Map drives the location report flow. Without a maps credential it is
// disabled for the whole session.
type Map struct {
	Deps
	locator geo.Locator
	cfg     config.MapsConfig
	enabled bool
}

// NewMap creates the map handler.
func NewMap(deps Deps, locator geo.Locator, cfg config.MapsConfig) *Map {
	return &Map{
		Deps:    deps,
		locator: locator,
		cfg:     cfg,
		enabled: cfg.MapsEnabled(),
	}
}

// Enabled reports whether the map feature is usable.
func (m *Map) Enabled() bool {
	return m.enabled
}

// StartupCheck returns the notice shown once at startup when the map is
// disabled.
func (m *Map) StartupCheck() (Notice, error) {
	if m.enabled {
		return Notice{}, nil
	}
	return m.fail(apperrors.NewConfigError("maps.api_key", apperrors.ErrMissingCredential), "map.missing_key", nil)
}

func (m *Map) defaultCenter() geo.Coordinate {
	return geo.Coordinate{Lat: m.cfg.DefaultLat, Lng: m.cfg.DefaultLng}
}

// Enter prepares the map view after it was activated, creating the map on
// first use. It reports whether a geolocation lookup should be requested.
func (m *Map) Enter() bool {
	if !m.enabled {
		return false
	}
	if m.State.Map == nil {
		m.State.Map = mapview.New(m.defaultCenter(), m.cfg.Zoom)
		m.logger().WithView(navigator.Map.String()).Info("map created", "center", m.defaultCenter().String())
	}
	return true
}

// Locate looks up the current position. It blocks and is safe to call off
// the event loop.
func (m *Map) Locate(ctx context.Context, gen uint64) LocateResult {
	pos, err := m.locator.CurrentPosition(ctx)
	return LocateResult{Generation: gen, Position: pos, Err: err}
}

// ApplyLocation centers the map on a lookup result, or on the default
// center if the lookup failed. Stale results are discarded.
func (m *Map) ApplyLocation(res LocateResult) {
	if m.stale("geo.locate", res.Generation, navigator.Map) || m.State.Map == nil {
		return
	}
	if res.Err != nil {
		m.logger().Warn("geolocation failed", "error", res.Err)
		m.State.Map.SetCenter(m.defaultCenter())
		return
	}
	m.State.Map.SetCenter(res.Position)
}

// Click places the pin at a grid cell, replacing any previous pin.
func (m *Map) Click(x, y int) *mapview.Marker {
	if m.State.Map == nil {
		return nil
	}
	return m.State.Map.ClickCell(x, y)
}

// ClickCursor places the pin under the keyboard cursor.
func (m *Map) ClickCursor() *mapview.Marker {
	if m.State.Map == nil {
		return nil
	}
	return m.State.Map.ClickCursor()
}

// ReportLocation files the pinned location and returns home. Without a pin
// nothing changes.
func (m *Map) ReportLocation(ctx context.Context) (Notice, error) {
	if !m.enabled {
		return m.fail(apperrors.NewPreconditionError("report location", apperrors.ErrFeatureDisabled), "map.disabled", nil)
	}
	if !m.State.HasPin() {
		return m.fail(apperrors.NewPreconditionError("report location", apperrors.ErrNoPin), "map.no_pin", nil)
	}

	pos := m.State.Map.Marker().Position
	text := m.Catalog.Tf("report.location", map[string]any{
		"Lat": fmt.Sprintf("%.4f", pos.Lat),
		"Lng": fmt.Sprintf("%.4f", pos.Lng),
	})
	sub := report.Submission{Kind: session.KindLocation, Position: &pos}
	if _, err := m.Reports.File(ctx, sub, text); err != nil {
		return m.fail(err, "report.failed", nil)
	}

	n := m.notice(LevelInfo, "map.reported", map[string]any{
		"Lat": strconv.FormatFloat(pos.Lat, 'f', -1, 64),
		"Lng": strconv.FormatFloat(pos.Lng, 'f', -1, 64),
	})
	if err := m.Nav.Activate(navigator.Home); err != nil {
		return n, err
	}
	return n, nil
}
