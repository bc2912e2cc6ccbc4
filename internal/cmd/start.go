package cmd

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/townreport/internal/config"
	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/geo"
	"github.com/Iron-Ham/townreport/internal/handler"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/media"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/report"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/tui"
	tuimsg "github.com/Iron-Ham/townreport/internal/tui/msg"
)

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	start, err := navigator.ParseView(cfg.UI.StartView)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	cat, err := i18n.New(cfg.UI.Locale)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	app := buildApp(cfg, cat, logger, start)
	watchConfig(app, logger)

	logger.Info("townreport started",
		"locale", cat.Locale().String(),
		"start_view", start.String(),
		"maps_enabled", cfg.Maps.MapsEnabled(),
		"config_file", viper.ConfigFileUsed(),
	)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// buildApp wires the session, navigator and handlers into a TUI.
func buildApp(cfg *config.Config, cat *i18n.Catalog, logger *logging.Logger, start navigator.View) *tui.App {
	bus := event.NewBus()
	event.AttachLogger(bus, logger)

	state := session.New(cat.T("profile.default_name"))
	nav := navigator.New(navigator.DefaultRegistry(), state, bus, logger)

	deps := handler.Deps{
		Nav:     nav,
		State:   state,
		Reports: report.NewService(state, report.LogSubmitter{Logger: logger}, bus, logger),
		Catalog: cat,
		Bus:     bus,
		Logger:  logger,
	}

	return tui.New(tui.Components{
		Nav:     nav,
		State:   state,
		Camera:  handler.NewCamera(deps, media.NewSource(cfg.Camera)),
		Map:     handler.NewMap(deps, newLocator(cfg.Geo), cfg.Maps),
		Profile: handler.NewProfile(deps),
		Catalog: cat,
		Logger:  logger,
	}, tui.Options{
		StartView: start,
		Camera:    cfg.Camera,
		UI:        cfg.UI,
	})
}

// newLogger opens the rotating log file, or discards logs when disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(cfg.Paths.ResolveStateDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		// Logging is not worth refusing to start over.
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		return logging.NopLogger(), nil
	}
	return logger, nil
}

// newLocator returns the configured geolocation provider. With geolocation
// disabled every lookup is refused and the map uses its default center.
func newLocator(cfg config.GeoConfig) geo.Locator {
	if !cfg.Enabled {
		return geo.DeniedLocator{Delay: cfg.Delay()}
	}
	return geo.StaticLocator{
		Position: geo.Coordinate{Lat: cfg.Latitude, Lng: cfg.Longitude},
		Delay:    cfg.Delay(),
	}
}

// watchConfig reloads the locale when the config file changes.
func watchConfig(app *tui.App, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed", "file", e.Name, "op", e.Op.String())
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("ignoring invalid config change", "error", err)
			return
		}
		app.Send(tuimsg.ConfigReloadedMsg{Locale: cfg.UI.Locale})
	})
	viper.WatchConfig()
}
