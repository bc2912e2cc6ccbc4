package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/townreport/internal/handler"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/navigator"
	tuimsg "github.com/Iron-Ham/townreport/internal/tui/msg"
	"github.com/Iron-Ham/townreport/internal/tui/view"
)

// reportTimeout bounds a synchronous report submission.
const reportTimeout = 10 * time.Second

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(c Components, opts Options) *App {
	model := NewModel(c, opts)

	progOpts := []tea.ProgramOption{}
	if opts.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	return &App{
		program: tea.NewProgram(model, progOpts...),
		model:   model,
	}
}

// Send delivers msg to the running program. It blocks until the program
// reads it, so call it from a goroutine.
func (a *App) Send(msg tea.Msg) {
	a.program.Send(msg)
}

// Run starts the TUI application
func (a *App) Run() error {
	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	// Release the camera if the program ended on the camera view.
	if m, ok := final.(Model); ok {
		m.shutdown()
	} else {
		a.model.shutdown()
	}
	return err
}

// activateMsg asks the model to activate a view from outside Update.
type activateMsg struct {
	view navigator.View
}

// Init shows the missing-credential notice once and moves to the start
// view.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if n, err := m.mapper.StartupCheck(); err != nil {
		m.logger.Warn("map disabled", "error", err)
		cmds = append(cmds, tuimsg.ShowNotice(n))
	}
	if m.opts.StartView != navigator.Title {
		v := m.opts.StartView
		cmds = append(cmds, func() tea.Msg { return activateMsg{view: v} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reports.Width = msg.Width - 8
		m.reports.Height = max(msg.Height-ReportsHeightOffset, 3)
		m.syncReports()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case activateMsg:
		cmd := m.activate(msg.view)
		return m, cmd

	case tuimsg.StreamOpenedMsg:
		n, err := m.camera.Attach(msg.Result)
		if err != nil {
			m.cameraFailed = true
			m.raise(n)
			return m, nil
		}
		if c := m.state.Capture; c != nil && c.Stream == msg.Result.Stream {
			return m, tuimsg.FrameTick(m.opts.Camera.FrameInterval(), msg.Result.Generation)
		}
		return m, nil

	case tuimsg.FrameTickMsg:
		if !m.state.Current(msg.Generation) || m.nav.Active() != navigator.Camera || m.state.Capture == nil {
			return m, nil
		}
		m.camera.Tick()
		return m, tuimsg.FrameTick(m.opts.Camera.FrameInterval(), msg.Generation)

	case tuimsg.LocatedMsg:
		if msg.Result.Generation == m.state.Generation() {
			m.locating = false
		}
		m.mapper.ApplyLocation(msg.Result)
		return m, nil

	case tuimsg.IconLoadedMsg:
		n, _ := m.profile.ApplyIcon(msg.Result)
		m.raise(n)
		return m, nil

	case tuimsg.NoticeMsg:
		m.raise(msg.Notice)
		return m, nil

	case tuimsg.ConfigReloadedMsg:
		cat, err := i18n.New(msg.Locale)
		if err != nil {
			m.logger.Warn("locale reload failed", "locale", msg.Locale, "error", err)
			return m, nil
		}
		m.setCatalog(cat)
		m.syncReports()
		m.logger.Info("locale reloaded", "locale", cat.Locale().String())
		return m, nil
	}

	// The file picker reads directories through its own messages.
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeypress processes keyboard input
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// A notice blocks everything until dismissed.
	if len(m.notices) > 0 {
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Back) {
			m.notices = m.notices[1:]
		}
		return m, nil
	}

	if m.renaming {
		return m.handleRenameInput(msg)
	}
	if m.picking {
		return m.handlePickerInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if v, ok := m.keys.MatchMenu(msg); ok && m.nav.Active() != navigator.Title {
		cmd := m.activate(v)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Back) {
		switch m.nav.Active() {
		case navigator.Title, navigator.Home:
			return m, nil
		default:
			cmd := m.activate(navigator.Home)
			return m, cmd
		}
	}

	switch m.nav.Active() {
	case navigator.Title:
		if key.Matches(msg, m.keys.Confirm) {
			cmd := m.activate(navigator.Home)
			return m, cmd
		}
	case navigator.Home:
		if key.Matches(msg, m.keys.Confirm) {
			cmd := m.activate(navigator.Camera)
			return m, cmd
		}
	case navigator.Camera:
		return m.handleCameraKey(msg)
	case navigator.Map:
		return m.handleMapKey(msg)
	case navigator.Reports:
		var cmd tea.Cmd
		m.reports, cmd = m.reports.Update(msg)
		return m, cmd
	case navigator.Profile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) handleCameraKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Snap):
		n, err := m.camera.Snap()
		if err != nil {
			m.raise(n)
			return m, nil
		}
		m.keys.Upload.SetEnabled(true)
	case key.Matches(msg, m.keys.Upload):
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		n, err := m.camera.Upload(ctx)
		m.raise(n)
		if err != nil {
			m.logger.Warn("upload failed", "error", err)
			return m, nil
		}
		cmd := m.entered()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Report) {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		n, err := m.mapper.ReportLocation(ctx)
		m.raise(n)
		if err != nil {
			return m, nil
		}
		cmd := m.entered()
		return m, cmd
	}

	grid := m.state.Map
	if grid == nil || !m.mapper.Enabled() {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		grid.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		grid.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		grid.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		grid.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.Pin):
		m.mapper.ClickCursor()
	case key.Matches(msg, m.keys.ZoomIn):
		grid.SetZoom(grid.Zoom() + 1)
	case key.Matches(msg, m.keys.ZoomOut):
		grid.SetZoom(grid.Zoom() - 1)
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditName):
		m.renaming = true
		m.nameInput.SetValue(m.state.Profile.Name)
		m.nameInput.CursorEnd()
		cmd := m.nameInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.ChangeIcon):
		m.picking = true
		return m, m.picker.Init()
	}
	return m, nil
}

// handleRenameInput feeds the name editor until it is confirmed or
// cancelled.
func (m Model) handleRenameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.renaming = false
		m.nameInput.Blur()
		if n, err := m.profile.Rename(m.nameInput.Value()); err != nil {
			m.raise(n)
		}
		return m, nil
	case tea.KeyEsc:
		m.renaming = false
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handlePickerInput feeds the icon picker and starts loading the chosen
// file.
func (m Model) handlePickerInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return m, tuimsg.LoadIcon(m.profile, path, m.state.Generation())
	}
	return m, cmd
}

// handleMouse maps clicks on the menu bar and the map grid.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || len(m.notices) > 0 {
		return m, nil
	}
	active := m.nav.Active()

	if active != navigator.Title && !m.renaming && !m.picking {
		// The tabs sit one row below the menu bar's top border.
		if msg.Y == lipgloss.Height(m.renderMain())+1 {
			if e, ok := view.NewMenuBarView(m.catalog, m.nav.Registry()).HitTest(msg.X); ok {
				cmd := m.activate(e.View)
				return m, cmd
			}
			return m, nil
		}
	}

	if active == navigator.Map && m.state.Map != nil && m.mapper.Enabled() {
		x, y := msg.X-view.MapOrigin.X, msg.Y-view.MapOrigin.Y
		w, h := m.state.Map.Size()
		if x >= 0 && x < w && y >= 0 && y < h {
			m.mapper.Click(x, y)
		}
	}
	return m, nil
}

// activate switches views and starts whatever the new view needs.
func (m *Model) activate(v navigator.View) tea.Cmd {
	if err := m.nav.Activate(v); err != nil {
		m.raise(handler.Notice{
			Level:   handler.LevelFor(err),
			Message: m.catalog.Tf("error.view_not_found", map[string]any{"View": v.String()}),
		})
		return nil
	}
	return m.entered()
}

// entered resets per-view UI state for the active view and returns the
// request it needs, if any. Handlers that navigate on their own call it
// afterwards too.
func (m *Model) entered() tea.Cmd {
	m.renaming = false
	m.picking = false
	m.cameraFailed = false
	m.locating = false
	m.nameInput.Blur()
	m.keys.Upload.SetEnabled(false)

	gen := m.state.Generation()
	switch m.nav.Active() {
	case navigator.Camera:
		if m.camera.Enter() {
			return tuimsg.OpenCamera(m.camera, gen)
		}
		return tuimsg.FrameTick(m.opts.Camera.FrameInterval(), gen)
	case navigator.Map:
		if m.mapper.Enter() {
			m.locating = true
			return tuimsg.Locate(m.mapper, gen)
		}
	case navigator.Reports:
		m.syncReports()
		m.reports.GotoTop()
	}
	return nil
}

// raise queues a notice; empty notices are ignored.
func (m *Model) raise(n handler.Notice) {
	if !n.Empty() {
		m.notices = append(m.notices, n)
	}
}

// syncReports refreshes the viewport content so scrolling knows its bounds.
func (m *Model) syncReports() {
	m.reports.SetContent(view.ReportLines(m.state.Reports, time.Now(), m.reports.Width))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.shutdown()
	return m, tea.Quit
}

// shutdown releases the capture device.
func (m Model) shutdown() {
	if c := m.state.Capture; c != nil {
		if n := c.Teardown(); n > 0 {
			m.logger.Info("camera released on exit", "tracks", n)
		}
		m.state.Capture = nil
	}
}
