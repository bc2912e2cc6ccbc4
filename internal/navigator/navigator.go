// Package navigator owns which view is visible and runs the side effects
// that go with a view change.
package navigator

import (
	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/session"
)

// Navigator switches between views. It is not safe for concurrent use; all
// calls must come from the UI event loop.
type Navigator struct {
	registry *Registry
	state    *session.State
	bus      *event.Bus
	logger   *logging.Logger

	active View
}

// New creates a navigator with the title view shown. bus and logger may be
// nil.
func New(registry *Registry, state *session.State, bus *event.Bus, logger *logging.Logger) *Navigator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	n := &Navigator{
		registry: registry,
		state:    state,
		bus:      bus,
		logger:   logger,
		active:   Title,
	}
	if c, ok := registry.Container(Title); ok {
		c.Visible = true
	}
	return n
}

// Active returns the visible view.
func (n *Navigator) Active() View {
	return n.active
}

// Registry returns the view registry.
func (n *Navigator) Registry() *Registry {
	return n.registry
}

// Activate makes v the only visible view. Leaving the camera view stops
// every capture track; leaving the map view removes its marker. Activating
// the current view runs the same steps again.
//
// If v has no registered container, Activate returns a *errors.LookupError
// and nothing changes.
func (n *Navigator) Activate(v View) error {
	target, err := n.lookup(v)
	if err != nil {
		n.logger.Error("activate failed", "view", v.String(), "error", err)
		return err
	}

	from := n.active
	for _, c := range n.registry.Containers() {
		c.Visible = false
	}
	target.Visible = true
	n.active = v

	if v != Camera {
		n.stopCapture()
	}
	if v != Map {
		n.clearPin()
	}
	n.syncMenu(v)

	gen := n.state.NextGeneration()
	n.publish(event.NewViewActivatedEvent(from.String(), v.String(), gen))
	return nil
}

func (n *Navigator) lookup(v View) (*Container, error) {
	if c, ok := n.registry.Container(v); ok {
		return c, nil
	}
	return nil, apperrors.NewLookupError("view", v.String())
}

func (n *Navigator) stopCapture() {
	capture := n.state.Capture
	if capture == nil {
		return
	}
	id := ""
	if capture.Stream != nil {
		id = capture.Stream.ID
	}
	stopped := capture.Teardown()
	n.state.Capture = nil
	n.publish(event.NewCaptureStoppedEvent(id, stopped))
}

func (n *Navigator) clearPin() {
	if n.state.Map == nil {
		return
	}
	if old, ok := n.state.Map.ClearMarker(); ok {
		n.publish(event.NewPinClearedEvent(old.Position.Lat, old.Position.Lng))
	}
}

func (n *Navigator) syncMenu(v View) {
	for _, e := range n.registry.Menu() {
		e.Active = false
	}
	if e, ok := n.registry.MenuEntry(v); ok {
		e.Active = true
	}
}

func (n *Navigator) publish(e event.Event) {
	if n.bus != nil {
		n.bus.Publish(e)
	}
}
