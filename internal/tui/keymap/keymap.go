// Package keymap provides the key bindings of the TUI and the per-view help
// they produce.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/townreport/internal/navigator"
)

// KeyMap is the full set of bindings. Which ones apply depends on the
// active view.
type KeyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Menu bar, bound 1:1 to views
	Menu map[navigator.View]key.Binding

	// Title and home
	Confirm key.Binding

	// Camera
	Snap   key.Binding
	Upload key.Binding

	// Map
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Pin     key.Binding
	Report  key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding

	// Profile
	EditName   key.Binding
	ChangeIcon key.Binding
}

// Default returns the default bindings. Menu keys come from the registry so
// the shortcut shown in the menu bar is the one that works.
func Default(reg *navigator.Registry) KeyMap {
	k := KeyMap{
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),

		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start")),

		Snap:   key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "snap")),
		Upload: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload"), key.WithDisabled()),

		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Pin:     key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "drop pin")),
		Report:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),

		EditName:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "rename")),
		ChangeIcon: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "icon")),

		Menu: make(map[navigator.View]key.Binding),
	}
	for _, e := range reg.Menu() {
		k.Menu[e.View] = key.NewBinding(key.WithKeys(e.Key), key.WithHelp(e.Key, e.View.String()))
	}
	return k
}

// MatchMenu returns the view whose menu binding matches msg.
func (k KeyMap) MatchMenu(msg tea.KeyMsg) (navigator.View, bool) {
	for _, v := range navigator.AllViews() {
		if b, ok := k.Menu[v]; ok && key.Matches(msg, b) {
			return v, true
		}
	}
	return 0, false
}

// viewHelp adapts a list of bindings to help.KeyMap.
type viewHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h viewHelp) ShortHelp() []key.Binding  { return h.short }
func (h viewHelp) FullHelp() [][]key.Binding { return h.full }

// ForView returns the help entries relevant to v.
func (k KeyMap) ForView(v navigator.View) help.KeyMap {
	global := []key.Binding{k.Back, k.Help, k.Quit}

	var local []key.Binding
	switch v {
	case navigator.Title:
		return viewHelp{short: []key.Binding{k.Confirm, k.Quit}, full: [][]key.Binding{{k.Confirm, k.Quit}}}
	case navigator.Home:
		local = []key.Binding{k.Confirm}
	case navigator.Camera:
		local = []key.Binding{k.Snap, k.Upload}
	case navigator.Map:
		local = []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pin, k.Report, k.ZoomIn, k.ZoomOut}
	case navigator.Reports:
		local = []key.Binding{k.Up, k.Down}
	case navigator.Profile:
		local = []key.Binding{k.EditName, k.ChangeIcon}
	}

	menu := make([]key.Binding, 0, len(k.Menu))
	for _, view := range navigator.AllViews() {
		if b, ok := k.Menu[view]; ok {
			menu = append(menu, b)
		}
	}

	return viewHelp{
		short: append(append([]key.Binding{}, local...), global...),
		full:  [][]key.Binding{local, menu, global},
	}
}
