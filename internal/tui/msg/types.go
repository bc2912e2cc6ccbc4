package msg

import (
	"github.com/Iron-Ham/townreport/internal/handler"
)

// FrameTickMsg advances the camera preview. Ticks from an older generation
// stop the tick loop.
type FrameTickMsg struct {
	Generation uint64
}

// StreamOpenedMsg carries the result of a camera open request.
type StreamOpenedMsg struct {
	Result handler.StreamResult
}

// LocatedMsg carries the result of a geolocation request.
type LocatedMsg struct {
	Result handler.LocateResult
}

// IconLoadedMsg carries the result of reading an icon file.
type IconLoadedMsg struct {
	Result handler.IconResult
}

// NoticeMsg raises a blocking notice.
type NoticeMsg struct {
	Notice handler.Notice
}

// ConfigReloadedMsg signals that the config file changed on disk.
type ConfigReloadedMsg struct {
	Locale string
}
