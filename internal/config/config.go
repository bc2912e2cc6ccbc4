package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the sample value shipped in example configs. It is
// treated the same as an empty key.
const PlaceholderAPIKey = "YOUR_API_KEY"

// Config represents the complete townreport configuration
type Config struct {
	Maps    MapsConfig    `mapstructure:"maps"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Geo     GeoConfig     `mapstructure:"geo"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Paths   PathsConfig   `mapstructure:"paths"`
}

// MapsConfig controls the map widget
type MapsConfig struct {
	// APIKey is the map service credential. When empty (or the placeholder)
	// the map feature is disabled for the session.
	APIKey string `mapstructure:"api_key"`
	// Zoom is the initial zoom level (1-20, default: 15)
	Zoom int `mapstructure:"zoom"`
	// DefaultLat/DefaultLng center the map when geolocation fails
	// (default: Shinjuku station, 35.690921, 139.700595)
	DefaultLat float64 `mapstructure:"default_lat"`
	DefaultLng float64 `mapstructure:"default_lng"`
}

// CameraConfig controls the capture source
type CameraConfig struct {
	// Source is an image file or a directory of frames. Empty uses a
	// generated test pattern.
	Source string `mapstructure:"source"`
	// FPS is the preview refresh rate (default: 8)
	FPS int `mapstructure:"fps"`
	// Deny simulates the user refusing camera permission
	Deny bool `mapstructure:"deny"`
}

// GeoConfig controls the geolocation provider
type GeoConfig struct {
	// Enabled reports a fixed position; when false every lookup fails
	// and the map falls back to its default center.
	Enabled   bool    `mapstructure:"enabled"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	// DelayMs simulates lookup latency
	DelayMs int `mapstructure:"delay_ms"`
}

// UIConfig controls the terminal UI
type UIConfig struct {
	// Locale selects the message catalog: "ja" or "en" (default: "ja")
	Locale string `mapstructure:"locale"`
	// StartView is the first view shown (default: "title")
	StartView string `mapstructure:"start_view"`
	// Mouse enables mouse support (menu and map clicks)
	Mouse bool `mapstructure:"mouse"`
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `mapstructure:"alt_screen"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logs are written (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress"`
}

// PathsConfig controls where townreport writes files
type PathsConfig struct {
	// StateDir holds the log file. Empty means the default state directory.
	StateDir string `mapstructure:"state_dir"`
}

// MapsEnabled reports whether a usable maps credential is configured.
func (c *MapsConfig) MapsEnabled() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

// FrameInterval returns the preview refresh interval.
func (c *CameraConfig) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.FPS)
}

// Delay returns the simulated geolocation latency.
func (c *GeoConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// ResolveStateDir returns the directory for log files.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir != "" {
		return expandHome(p.StateDir)
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "state", AppName)
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// AppName is used for config, state and env var naming.
const AppName = "townreport"

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Maps: MapsConfig{
			APIKey:     "",
			Zoom:       15,
			DefaultLat: 35.690921,
			DefaultLng: 139.700595,
		},
		Camera: CameraConfig{
			Source: "",
			FPS:    8,
			Deny:   false,
		},
		Geo: GeoConfig{
			Enabled:   false,
			Latitude:  0,
			Longitude: 0,
			DelayMs:   300,
		},
		UI: UIConfig{
			Locale:    "ja",
			StartView: "title",
			Mouse:     true,
			AltScreen: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
		Paths: PathsConfig{
			StateDir: "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// SetDefaultsOn registers default values on the given viper instance.
func SetDefaultsOn(v *viper.Viper) {
	d := Default()

	v.SetDefault("maps.api_key", d.Maps.APIKey)
	v.SetDefault("maps.zoom", d.Maps.Zoom)
	v.SetDefault("maps.default_lat", d.Maps.DefaultLat)
	v.SetDefault("maps.default_lng", d.Maps.DefaultLng)

	v.SetDefault("camera.source", d.Camera.Source)
	v.SetDefault("camera.fps", d.Camera.FPS)
	v.SetDefault("camera.deny", d.Camera.Deny)

	v.SetDefault("geo.enabled", d.Geo.Enabled)
	v.SetDefault("geo.latitude", d.Geo.Latitude)
	v.SetDefault("geo.longitude", d.Geo.Longitude)
	v.SetDefault("geo.delay_ms", d.Geo.DelayMs)

	v.SetDefault("ui.locale", d.UI.Locale)
	v.SetDefault("ui.start_view", d.UI.StartView)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)

	v.SetDefault("logging.enabled", d.Logging.Enabled)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("paths.state_dir", d.Paths.StateDir)
}

// Load reads the configuration from the global viper into a Config and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
