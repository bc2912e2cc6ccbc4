package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/townreport/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify townreport configuration",
	Long: `View or modify townreport configuration.

Without arguments, displays the effective configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  townreport config set ui.locale en
  townreport config set maps.zoom 17
  townreport config set camera.source ~/Pictures/street

Run 'townreport config show' to see every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/townreport/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// settableKeys maps every key `config set` accepts to its value type.
var settableKeys = map[string]string{
	"maps.api_key":        "string",
	"maps.zoom":           "int",
	"maps.default_lat":    "float",
	"maps.default_lng":    "float",
	"camera.source":       "string",
	"camera.fps":          "int",
	"camera.deny":         "bool",
	"geo.enabled":         "bool",
	"geo.latitude":        "float",
	"geo.longitude":       "float",
	"geo.delay_ms":        "int",
	"ui.locale":           "string",
	"ui.start_view":       "string",
	"ui.mouse":            "bool",
	"ui.alt_screen":       "bool",
	"logging.enabled":     "bool",
	"logging.level":       "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
	"logging.compress":    "bool",
	"paths.state_dir":     "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}
	return writeSettings(out, viper.AllSettings())
}

// writeSettings renders settings as YAML with the maps credential masked.
func writeSettings(w io.Writer, settings map[string]any) error {
	if maps, ok := settings["maps"].(map[string]any); ok {
		if key, _ := maps["api_key"].(string); key != "" {
			maps["api_key"] = maskSecret(key)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	return enc.Close()
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// parseSetting converts a raw `config set` value to the key's type.
func parseSetting(key, value string) (any, error) {
	keyType, ok := settableKeys[key]
	if !ok {
		known := make([]string, 0, len(settableKeys))
		for k := range settableKeys {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(known, ", "))
	}

	switch keyType {
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected number", key)
		}
		return f, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseSetting(key, value)
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigContent is written by `config init`.
const defaultConfigContent = `# townreport configuration

# Map widget. The map is disabled until api_key is set; it can also come
# from TOWNREPORT_MAPS_API_KEY in the environment or a .env file.
maps:
  api_key: ""
  zoom: 15
  # Center used when the current position is unknown (Shinjuku station)
  default_lat: 35.690921
  default_lng: 139.700595

# Camera capture
camera:
  # An image file or a directory of frames; empty shows a test pattern
  source: ""
  fps: 8
  # Simulate refusing camera permission
  deny: false

# Geolocation. When disabled every lookup fails and the map falls back to
# its default center.
geo:
  enabled: false
  latitude: 0
  longitude: 0
  delay_ms: 300

# Terminal UI
ui:
  # ja or en
  locale: ja
  # title, home, camera, map, reports or profile
  start_view: title
  mouse: true
  alt_screen: true

logging:
  enabled: true
  # debug, info, warn or error
  level: info
  max_size_mb: 10
  max_backups: 3
  compress: false

paths:
  # Where townreport.log is written; empty uses $XDG_STATE_HOME/townreport
  state_dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'townreport config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize townreport.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: TOWNREPORT_* (e.g., TOWNREPORT_MAPS_API_KEY)")
	fmt.Fprintln(out, "A .env file in the current directory is loaded first.")
	return nil
}
