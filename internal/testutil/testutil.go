// Package testutil wires the townreport session for tests that span several
// packages.
package testutil

import (
	"sync"
	"testing"
	"time"

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
)

// FixedPosition is what the default test locator reports.
var FixedPosition = geo.Coordinate{Lat: 35.6, Lng: 139.7}

// Options adjust a World. The zero value gives an English session with a
// maps credential, a test-pattern camera and a locator at FixedPosition.
type Options struct {
	Locale   string
	APIKey   string
	NoMaps   bool
	Source   media.Source
	Locator  geo.Locator
	Logger   *logging.Logger
	Clock    func() time.Time
	UserName string
}

// World is a fully wired session.
type World struct {
	State   *session.State
	Bus     *event.Bus
	Nav     *navigator.Navigator
	Catalog *i18n.Catalog
	Deps    handler.Deps
	Maps    config.MapsConfig
	Events  *Recorder

	Camera  *handler.Camera
	Map     *handler.Map
	Profile *handler.Profile
}

// NewWorld builds a World from opts.
func NewWorld(t *testing.T, opts Options) *World {
	t.Helper()

	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	cat, err := i18n.New(locale)
	if err != nil {
		t.Fatalf("i18n.New(%q): %v", locale, err)
	}

	name := opts.UserName
	if name == "" {
		name = "guest"
	}
	state := session.New(name)
	if opts.Clock != nil {
		state.SetClock(opts.Clock)
	}

	bus := event.NewBus()
	rec := Record(bus)
	nav := navigator.New(navigator.DefaultRegistry(), state, bus, opts.Logger)

	deps := handler.Deps{
		Nav:     nav,
		State:   state,
		Reports: report.NewService(state, report.LogSubmitter{Logger: opts.Logger}, bus, opts.Logger),
		Catalog: cat,
		Bus:     bus,
		Logger:  opts.Logger,
	}

	maps := config.MapsConfig{
		APIKey:     opts.APIKey,
		Zoom:       15,
		DefaultLat: geo.Shinjuku.Lat,
		DefaultLng: geo.Shinjuku.Lng,
	}
	if maps.APIKey == "" && !opts.NoMaps {
		maps.APIKey = "test-key"
	}

	source := opts.Source
	if source == nil {
		source = media.PatternSource{}
	}
	locator := opts.Locator
	if locator == nil {
		locator = geo.StaticLocator{Position: FixedPosition}
	}

	return &World{
		State:   state,
		Bus:     bus,
		Nav:     nav,
		Catalog: cat,
		Deps:    deps,
		Maps:    maps,
		Events:  rec,
		Camera:  handler.NewCamera(deps, source),
		Map:     handler.NewMap(deps, locator, maps),
		Profile: handler.NewProfile(deps),
	}
}

// Activate switches to v and fails the test on error. It returns the
// generation the transition produced.
func (w *World) Activate(t *testing.T, v navigator.View) uint64 {
	t.Helper()
	if err := w.Nav.Activate(v); err != nil {
		t.Fatalf("Activate(%v): %v", v, err)
	}
	return w.State.Generation()
}

// Recorder collects every event published on a bus.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// Record subscribes a new Recorder to all events on bus.
func Record(bus *event.Bus) *Recorder {
	r := &Recorder{}
	bus.SubscribeAll(func(e event.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

// Types returns the event types seen so far, in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(eventType string) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
