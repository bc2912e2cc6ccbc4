// Package geo provides coordinates and the geolocation capability.
package geo

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
)

// Coordinate is a WGS 84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Shinjuku is the fallback map center (Shinjuku station).
var Shinjuku = Coordinate{Lat: 35.690921, Lng: 139.700595}

// String formats the coordinate with four decimal places.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// Valid reports whether the coordinate lies within WGS 84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lng)
}

// Locator looks up the user's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

// StaticLocator reports a fixed position after an optional delay.
type StaticLocator struct {
	Position Coordinate
	Delay    time.Duration
}

// CurrentPosition implements Locator.
func (l StaticLocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	if err := wait(ctx, l.Delay); err != nil {
		return Coordinate{}, err
	}
	return l.Position, nil
}

// DeniedLocator always fails as if the user refused location access.
type DeniedLocator struct {
	Delay time.Duration
}

// CurrentPosition implements Locator.
func (l DeniedLocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	if err := wait(ctx, l.Delay); err != nil {
		return Coordinate{}, err
	}
	return Coordinate{}, apperrors.NewPermissionError("geolocation", apperrors.ErrPermissionDenied)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
