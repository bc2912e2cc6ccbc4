package navigator

import "sort"

// Container is the displayable region for one view.
type Container struct {
	View    View
	Visible bool
}

// MenuEntry is a menu-bar button bound to one view.
type MenuEntry struct {
	View View
	// Key is the keyboard shortcut.
	Key string
	// LabelID is the message catalog id of the button label.
	LabelID string
	Active  bool
}

// Registry maps views to their containers and optional menu entries.
// Entries are registered explicitly; nothing is derived from view names.
type Registry struct {
	containers map[View]*Container
	menu       map[View]*MenuEntry
	menuOrder  []*MenuEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		containers: make(map[View]*Container),
		menu:       make(map[View]*MenuEntry),
	}
}

// DefaultRegistry registers all six views and the five-button menu bar.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, v := range AllViews() {
		r.Register(v)
	}
	r.RegisterMenu(Home, "1", "menu.home")
	r.RegisterMenu(Camera, "2", "menu.camera")
	r.RegisterMenu(Map, "3", "menu.map")
	r.RegisterMenu(Reports, "4", "menu.reports")
	r.RegisterMenu(Profile, "5", "menu.profile")
	return r
}

// Register adds a hidden container for v, replacing any existing one.
func (r *Registry) Register(v View) *Container {
	c := &Container{View: v}
	r.containers[v] = c
	return c
}

// RegisterMenu adds a menu entry for v. Entries keep registration order.
func (r *Registry) RegisterMenu(v View, key, labelID string) *MenuEntry {
	e := &MenuEntry{View: v, Key: key, LabelID: labelID}
	if old, ok := r.menu[v]; ok {
		*old = *e
		return old
	}
	r.menu[v] = e
	r.menuOrder = append(r.menuOrder, e)
	return e
}

// Container returns the container registered for v.
func (r *Registry) Container(v View) (*Container, bool) {
	c, ok := r.containers[v]
	return c, ok
}

// MenuEntry returns the menu entry for v, if the view has one.
func (r *Registry) MenuEntry(v View) (*MenuEntry, bool) {
	e, ok := r.menu[v]
	return e, ok
}

// Menu returns menu entries in registration order.
func (r *Registry) Menu() []*MenuEntry {
	return r.menuOrder
}

// MenuByKey finds the entry bound to a shortcut key.
func (r *Registry) MenuByKey(key string) (*MenuEntry, bool) {
	for _, e := range r.menuOrder {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Containers returns all containers ordered by view.
func (r *Registry) Containers() []*Container {
	out := make([]*Container, 0, len(r.containers))
	for _, c := range r.containers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].View < out[j].View })
	return out
}

// VisibleViews lists views whose container is shown.
func (r *Registry) VisibleViews() []View {
	var out []View
	for _, c := range r.Containers() {
		if c.Visible {
			out = append(out, c.View)
		}
	}
	return out
}

// ActiveMenu lists views whose menu entry is marked active.
func (r *Registry) ActiveMenu() []View {
	var out []View
	for _, e := range r.menuOrder {
		if e.Active {
			out = append(out, e.View)
		}
	}
	return out
}
