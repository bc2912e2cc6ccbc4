package msg

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/townreport/internal/handler"
)

// requestTimeout bounds every background platform call.
const requestTimeout = 30 * time.Second

// OpenCamera returns a command that opens a camera stream.
func OpenCamera(cam *handler.Camera, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return StreamOpenedMsg{Result: cam.Open(ctx, gen)}
	}
}

// Locate returns a command that looks up the current position.
func Locate(m *handler.Map, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return LocatedMsg{Result: m.Locate(ctx, gen)}
	}
}

// LoadIcon returns a command that reads and decodes an icon file.
func LoadIcon(p *handler.Profile, path string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return IconLoadedMsg{Result: p.LoadIcon(ctx, path, gen)}
	}
}

// FrameTick schedules the next camera preview frame.
func FrameTick(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return FrameTickMsg{Generation: gen}
	})
}

// ShowNotice returns a command that raises n, or nil if n is empty.
func ShowNotice(n handler.Notice) tea.Cmd {
	if n.Empty() {
		return nil
	}
	return func() tea.Msg { return NoticeMsg{Notice: n} }
}
