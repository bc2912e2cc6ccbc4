package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Maps.APIKey != "" {
		t.Errorf("Maps.APIKey = %q, want empty", cfg.Maps.APIKey)
	}
	if cfg.Maps.Zoom != 15 {
		t.Errorf("Maps.Zoom = %d, want 15", cfg.Maps.Zoom)
	}
	if cfg.Maps.DefaultLat != 35.690921 || cfg.Maps.DefaultLng != 139.700595 {
		t.Errorf("default center = (%v, %v), want Shinjuku", cfg.Maps.DefaultLat, cfg.Maps.DefaultLng)
	}
	if cfg.Camera.FPS != 8 {
		t.Errorf("Camera.FPS = %d, want 8", cfg.Camera.FPS)
	}
	if cfg.UI.Locale != "ja" {
		t.Errorf("UI.Locale = %q, want ja", cfg.UI.Locale)
	}
	if cfg.UI.StartView != "title" {
		t.Errorf("UI.StartView = %q, want title", cfg.UI.StartView)
	}
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestMapsConfig_MapsEnabled(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{PlaceholderAPIKey, false},
		{"AIza-real-key", true},
	}
	for _, tt := range tests {
		c := MapsConfig{APIKey: tt.key}
		if got := c.MapsEnabled(); got != tt.want {
			t.Errorf("MapsEnabled(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestCameraConfig_FrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{8, 125 * time.Millisecond},
		{1, time.Second},
		{0, time.Second},
	}
	for _, tt := range tests {
		c := CameraConfig{FPS: tt.fps}
		if got := c.FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval(fps=%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestGeoConfig_Delay(t *testing.T) {
	c := GeoConfig{DelayMs: 250}
	if c.Delay() != 250*time.Millisecond {
		t.Errorf("Delay() = %v", c.Delay())
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := ConfigDir(); got != filepath.Join("/custom/config", AppName) {
			t.Errorf("ConfigDir() = %q", got)
		}
	})

	t.Run("falls back to ~/.config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		if got := ConfigDir(); got != filepath.Join(home, ".config", AppName) {
			t.Errorf("ConfigDir() = %q", got)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/x")
	if got := ConfigFile(); got != filepath.Join("/x", AppName, "config.yaml") {
		t.Errorf("ConfigFile() = %q", got)
	}
}

func TestPathsConfig_ResolveStateDir(t *testing.T) {
	t.Run("explicit dir wins", func(t *testing.T) {
		p := PathsConfig{StateDir: "/var/lib/tr"}
		if got := p.ResolveStateDir(); got != "/var/lib/tr" {
			t.Errorf("ResolveStateDir() = %q", got)
		}
	})

	t.Run("XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/state")
		p := PathsConfig{}
		if got := p.ResolveStateDir(); got != filepath.Join("/state", AppName) {
			t.Errorf("ResolveStateDir() = %q", got)
		}
	})

	t.Run("tilde expansion", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		p := PathsConfig{StateDir: "~/logs"}
		if got := p.ResolveStateDir(); got != filepath.Join(home, "logs") {
			t.Errorf("ResolveStateDir() = %q", got)
		}
	})
}

func TestLoadFrom(t *testing.T) {
	t.Run("defaults load cleanly", func(t *testing.T) {
		v := viper.New()
		SetDefaultsOn(v)

		cfg, err := LoadFrom(v)
		if err != nil {
			t.Fatalf("LoadFrom failed: %v", err)
		}
		if cfg.Maps.Zoom != 15 {
			t.Errorf("Maps.Zoom = %d", cfg.Maps.Zoom)
		}
	})

	t.Run("reads yaml overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "maps:\n  api_key: abc\n  zoom: 12\nui:\n  locale: en\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		v := viper.New()
		SetDefaultsOn(v)
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			t.Fatalf("ReadInConfig failed: %v", err)
		}

		cfg, err := LoadFrom(v)
		if err != nil {
			t.Fatalf("LoadFrom failed: %v", err)
		}
		if cfg.Maps.APIKey != "abc" || cfg.Maps.Zoom != 12 {
			t.Errorf("maps = %+v", cfg.Maps)
		}
		if cfg.UI.Locale != "en" {
			t.Errorf("UI.Locale = %q, want en", cfg.UI.Locale)
		}
		if cfg.Camera.FPS != 8 {
			t.Errorf("unset keys should keep defaults, Camera.FPS = %d", cfg.Camera.FPS)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		v := viper.New()
		SetDefaultsOn(v)
		v.Set("maps.zoom", 0)

		_, err := LoadFrom(v)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := err.(ValidationErrors); !ok {
			t.Errorf("error type = %T, want ValidationErrors", err)
		}
	})
}
