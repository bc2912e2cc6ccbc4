package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "maps.zoom")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLocales returns the supported UI locales
func ValidLocales() []string {
	return []string{"ja", "en"}
}

// ValidStartViews returns the view names accepted by ui.start_view
func ValidStartViews() []string {
	return []string{"title", "home", "camera", "map", "reports", "profile"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMaps()...)
	errors = append(errors, c.validateCamera()...)
	errors = append(errors, c.validateGeo()...)
	errors = append(errors, c.validateUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateMaps() []ValidationError {
	var errors []ValidationError

	if c.Maps.Zoom < 1 || c.Maps.Zoom > 20 {
		errors = append(errors, ValidationError{
			Field:   "maps.zoom",
			Value:   c.Maps.Zoom,
			Message: "must be between 1 and 20",
		})
	}
	errors = append(errors, validateCoordinate("maps.default_lat", "maps.default_lng", c.Maps.DefaultLat, c.Maps.DefaultLng)...)

	return errors
}

func (c *Config) validateCamera() []ValidationError {
	var errors []ValidationError

	if c.Camera.FPS < 1 || c.Camera.FPS > 30 {
		errors = append(errors, ValidationError{
			Field:   "camera.fps",
			Value:   c.Camera.FPS,
			Message: "must be between 1 and 30",
		})
	}
	if c.Camera.Source != "" {
		if _, err := os.Stat(expandHome(c.Camera.Source)); err != nil {
			errors = append(errors, ValidationError{
				Field:   "camera.source",
				Value:   c.Camera.Source,
				Message: "path does not exist",
			})
		}
	}

	return errors
}

func (c *Config) validateGeo() []ValidationError {
	var errors []ValidationError

	if c.Geo.Enabled {
		errors = append(errors, validateCoordinate("geo.latitude", "geo.longitude", c.Geo.Latitude, c.Geo.Longitude)...)
	}
	if c.Geo.DelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "geo.delay_ms",
			Value:   c.Geo.DelayMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateUI() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLocales(), strings.ToLower(c.UI.Locale)) {
		errors = append(errors, ValidationError{
			Field:   "ui.locale",
			Value:   c.UI.Locale,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLocales(), ", ")),
		})
	}
	if c.UI.StartView != "" && !slices.Contains(ValidStartViews(), strings.ToLower(c.UI.StartView)) {
		errors = append(errors, ValidationError{
			Field:   "ui.start_view",
			Value:   c.UI.StartView,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidStartViews(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

func validateCoordinate(latField, lngField string, lat, lng float64) []ValidationError {
	var errors []ValidationError
	if lat < -90 || lat > 90 {
		errors = append(errors, ValidationError{Field: latField, Value: lat, Message: "must be between -90 and 90"})
	}
	if lng < -180 || lng > 180 {
		errors = append(errors, ValidationError{Field: lngField, Value: lng, Message: "must be between -180 and 180"})
	}
	return errors
}
