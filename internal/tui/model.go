package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Iron-Ham/townreport/internal/config"
	"github.com/Iron-Ham/townreport/internal/handler"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/imaging"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/tui/keymap"
)

// Layout constants
const (
	// DefaultWidth is used until the first WindowSizeMsg arrives.
	DefaultWidth = 80
	// ReportsHeightOffset is the space taken by the heading, box and chrome
	// around the reports viewport.
	ReportsHeightOffset = 14
	// PickerHeight is the number of entries the icon picker shows.
	PickerHeight = 8
)

// Options configures the TUI beyond its collaborators.
type Options struct {
	// StartView is activated on Init. The navigator itself starts on title.
	StartView navigator.View
	Camera    config.CameraConfig
	UI        config.UIConfig
}

// Components are the collaborators the model drives.
type Components struct {
	Nav     *navigator.Navigator
	State   *session.State
	Camera  *handler.Camera
	Map     *handler.Map
	Profile *handler.Profile
	Catalog *i18n.Catalog
	Logger  *logging.Logger
}

// Model holds the TUI application state
type Model struct {
	// Core components
	nav     *navigator.Navigator
	state   *session.State
	camera  *handler.Camera
	mapper  *handler.Map
	profile *handler.Profile
	catalog *i18n.Catalog
	logger  *logging.Logger
	opts    Options

	// Widgets
	keys      keymap.KeyMap
	help      help.Model
	reports   viewport.Model
	nameInput textinput.Model
	picker    filepicker.Model

	// UI state
	width    int
	height   int
	quitting bool
	renaming bool
	picking  bool
	// cameraFailed is set when the last stream request failed.
	cameraFailed bool
	// locating is set while a geolocation lookup is in flight.
	locating bool

	// notices are shown one at a time, oldest first, until dismissed.
	notices []handler.Notice
}

// NewModel creates a new TUI model
func NewModel(c Components, opts Options) Model {
	logger := c.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	ti := textinput.New()
	ti.CharLimit = 40
	ti.Width = 30
	ti.Prompt = "> "

	fp := filepicker.New()
	fp.AllowedTypes = imaging.SupportedExtensions()
	fp.AutoHeight = false
	fp.Height = PickerHeight
	if dir, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = dir
	}

	return Model{
		nav:       c.Nav,
		state:     c.State,
		camera:    c.Camera,
		mapper:    c.Map,
		profile:   c.Profile,
		catalog:   c.Catalog,
		logger:    logger,
		opts:      opts,
		keys:      keymap.Default(c.Nav.Registry()),
		help:      help.New(),
		reports:   viewport.New(DefaultWidth-8, 10),
		nameInput: ti,
		picker:    fp,
		width:     DefaultWidth,
	}
}

// ActiveView returns the view the navigator has active.
func (m Model) ActiveView() navigator.View {
	return m.nav.Active()
}

// Notice returns the notice currently shown, if any.
func (m Model) Notice() (handler.Notice, bool) {
	if len(m.notices) == 0 {
		return handler.Notice{}, false
	}
	return m.notices[0], true
}

// setCatalog swaps the message catalog everywhere it is held.
func (m *Model) setCatalog(cat *i18n.Catalog) {
	m.catalog = cat
	m.camera.Catalog = cat
	m.mapper.Catalog = cat
	m.profile.Catalog = cat
}
