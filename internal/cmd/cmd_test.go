package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/townreport/internal/config"
	"github.com/Iron-Ham/townreport/internal/geo"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/navigator"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "townreport" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "townreport")
	}

	want := []string{"views", "config", "logs"}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"start-view", "locale"} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
}

func TestViewsTable(t *testing.T) {
	out := viewsTable(navigator.DefaultRegistry())
	for _, v := range navigator.AllViews() {
		if !strings.Contains(out, v.String()) {
			t.Errorf("table missing view %q", v)
		}
	}
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		if !strings.Contains(out, key) {
			t.Errorf("table missing key %q", key)
		}
	}
}

func TestParseSetting(t *testing.T) {
	tests := []struct {
		key, value string
		want       any
		wantErr    bool
	}{
		{"ui.locale", "en", "en", false},
		{"maps.zoom", "17", 17, false},
		{"maps.zoom", "high", nil, true},
		{"camera.deny", "true", true, false},
		{"camera.deny", "yes", nil, true},
		{"geo.latitude", "35.6", 35.6, false},
		{"nope.key", "x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseSetting(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSetting(%q, %q) error = %v", tt.key, tt.value, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseSetting(%q, %q) = %v, want %v", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestSettableKeysCoverDefaults(t *testing.T) {
	// Every key `config set` accepts must be a real config key.
	known := map[string]bool{}
	for _, k := range []string{
		"maps.api_key", "maps.zoom", "maps.default_lat", "maps.default_lng",
		"camera.source", "camera.fps", "camera.deny",
		"geo.enabled", "geo.latitude", "geo.longitude", "geo.delay_ms",
		"ui.locale", "ui.start_view", "ui.mouse", "ui.alt_screen",
		"logging.enabled", "logging.level", "logging.max_size_mb", "logging.max_backups", "logging.compress",
		"paths.state_dir",
	} {
		known[k] = true
	}
	for k := range settableKeys {
		if !known[k] {
			t.Errorf("settable key %q is not a config key", k)
		}
	}
	if len(settableKeys) != len(known) {
		t.Errorf("settable keys = %d, config keys = %d", len(settableKeys), len(known))
	}
}

func TestWriteSettings_MasksAPIKey(t *testing.T) {
	var buf bytes.Buffer
	settings := map[string]any{
		"maps": map[string]any{"api_key": "secret-key-1234", "zoom": 15},
		"ui":   map[string]any{"locale": "ja"},
	}
	if err := writeSettings(&buf, settings); err != nil {
		t.Fatalf("writeSettings: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "secret-key") {
		t.Error("api key must be masked")
	}
	if !strings.Contains(out, "1234") || !strings.Contains(out, "locale: ja") {
		t.Errorf("output = %s", out)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret("abc"); got != "***" {
		t.Errorf("maskSecret(abc) = %q", got)
	}
	if got := maskSecret("abcdefgh"); got != "****efgh" {
		t.Errorf("maskSecret(abcdefgh) = %q", got)
	}
}

func TestNewLocator(t *testing.T) {
	if _, ok := newLocator(config.GeoConfig{}).(geo.DeniedLocator); !ok {
		t.Error("disabled geolocation should deny lookups")
	}
	loc := newLocator(config.GeoConfig{Enabled: true, Latitude: 35.6, Longitude: 139.7})
	static, ok := loc.(geo.StaticLocator)
	if !ok || static.Position != (geo.Coordinate{Lat: 35.6, Lng: 139.7}) {
		t.Errorf("locator = %#v", loc)
	}
}

func TestNewLogger_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Enabled = false
	cfg.Paths.StateDir = t.TempDir()

	logger, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("dropped")
	if files := logging.LogFiles(cfg.Paths.StateDir); len(files) != 0 {
		t.Errorf("disabled logging wrote %v", files)
	}
}

func TestLogQuery(t *testing.T) {
	now := time.Now()
	entries := []logging.LogEntry{
		{Timestamp: now.Add(-2 * time.Hour), Level: logging.LevelInfo, Message: "view activated", View: "home"},
		{Timestamp: now.Add(-time.Minute), Level: logging.LevelWarn, Message: "camera open failed", View: "camera",
			Attrs: map[string]any{"error": "permission denied"}},
		{Timestamp: now, Level: logging.LevelDebug, Message: "stale result discarded"},
	}

	q, err := parseLogQuery("warn", "", "", "", now)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.apply(entries); len(got) != 1 {
		t.Errorf("level filter kept %d", len(got))
	}

	q, _ = parseLogQuery("", "1h", "", "", now)
	if got := q.apply(entries); len(got) != 2 {
		t.Errorf("since filter kept %d", len(got))
	}

	q, _ = parseLogQuery("", "", "denied", "", now)
	if got := q.apply(entries); len(got) != 1 || got[0].View != "camera" {
		t.Errorf("grep should search attributes, got %v", got)
	}

	q, _ = parseLogQuery("", "", "", "home", now)
	if got := q.apply(entries); len(got) != 1 {
		t.Errorf("view filter kept %d", len(got))
	}

	if _, err := parseLogQuery("", "soon", "", "", now); err == nil {
		t.Error("expected error for bad duration")
	}
	if _, err := parseLogQuery("", "", "(", "", now); err == nil {
		t.Error("expected error for bad pattern")
	}
}

func TestFormatLogEntry(t *testing.T) {
	out := formatLogEntry(logging.LogEntry{
		Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Level:     logging.LevelInfo,
		Message:   "report filed",
		ReportID:  "r-1",
	})
	for _, want := range []string{"09:30:00.000", "[INFO]", "report filed", "report_id=r-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
