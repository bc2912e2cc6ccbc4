// Package session holds the in-memory state shared by the navigator and the
// screen handlers for the lifetime of the process.
package session

import (
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/Iron-Ham/townreport/internal/mapview"
	"github.com/Iron-Ham/townreport/internal/media"
)

// PointsPerReport is awarded for every completed report.
const PointsPerReport = 10

// TimestampLayout formats report times in local time.
const TimestampLayout = "2006/1/2 15:04:05"

// Report kinds.
const (
	KindPhoto    = "photo"
	KindLocation = "location"
)

// Report is one completed report.
type Report struct {
	ID        string
	Kind      string
	Text      string
	CreatedAt time.Time
}

// Line renders the report as "<local timestamp>: <text>".
func (r Report) Line() string {
	return r.CreatedAt.Local().Format(TimestampLayout) + ": " + r.Text
}

// Profile is the user's display identity.
type Profile struct {
	Name string
	// Icon is the decoded icon image; nil until one is chosen.
	Icon image.Image
	// IconRef is the data URL of the icon.
	IconRef  string
	IconPath string
}

// CaptureSession exists only while the camera view is active.
type CaptureSession struct {
	Stream *media.Stream
	// Preview is the stream bound to the live preview, nil once cleared.
	Preview *media.Stream
	// Frozen holds the captured frame after a snap.
	Frozen *image.RGBA
}

// Teardown stops every track and clears the preview. It returns the number
// of tracks that were live.
func (c *CaptureSession) Teardown() int {
	n := 0
	if c.Stream != nil {
		n = c.Stream.Stop()
	}
	c.Preview = nil
	return n
}

// Snapped reports whether a frame has been captured.
func (c *CaptureSession) Snapped() bool {
	return c != nil && c.Frozen != nil
}

// State is the shared session state. It is owned by the UI event loop; only
// the generation counter is read from other goroutines.
type State struct {
	Points  int
	Reports []Report
	Profile Profile

	// Capture is non-nil only while the camera view holds a stream.
	Capture *CaptureSession
	// Map is created lazily on first entry to the map view.
	Map *mapview.Map

	generation atomic.Uint64
	now        func() time.Time
}

// New creates an empty session for a user called name.
func New(name string) *State {
	return &State{
		Profile: Profile{Name: name},
		now:     time.Now,
	}
}

// SetClock overrides the report timestamp source.
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

// AddPoints adds n points and returns the new total.
func (s *State) AddPoints(n int) int {
	s.Points += n
	return s.Points
}

// AddReport prepends a report so the list stays newest-first.
func (s *State) AddReport(kind, text string) Report {
	r := Report{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.Reports = append([]Report{r}, s.Reports...)
	return r
}

// Generation returns the current view generation.
func (s *State) Generation() uint64 {
	return s.generation.Load()
}

// NextGeneration advances the view generation and returns the new value.
func (s *State) NextGeneration() uint64 {
	return s.generation.Inc()
}

// Current reports whether gen is still the live generation.
func (s *State) Current(gen uint64) bool {
	return s.generation.Load() == gen
}

// HasPin reports whether the map holds a marker.
func (s *State) HasPin() bool {
	return s.Map != nil && s.Map.Marker() != nil
}
