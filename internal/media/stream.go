// Package media models the camera capability: sources that open streams,
// streams made of stoppable tracks, and frame snapshots.
package media

import (
	"context"
	"image"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	xdraw "golang.org/x/image/draw"

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
)

// Track is a single stoppable media track.
type Track struct {
	ID   string
	Kind string

	stopped atomic.Bool
}

func newTrack(kind string) *Track {
	return &Track{ID: uuid.NewString(), Kind: kind}
}

// Stop ends the track. It reports whether the track was live.
func (t *Track) Stop() bool {
	return t.stopped.CompareAndSwap(false, true)
}

// Live reports whether the track has not been stopped.
func (t *Track) Live() bool {
	return !t.stopped.Load()
}

// Stream is an opened capture: a set of tracks plus the frames they carry.
// A stream whose tracks are all stopped yields ErrStreamStopped on read.
type Stream struct {
	ID string

	tracks []*Track

	mu     sync.Mutex
	frames []image.Image
	index  int
}

// NewStream creates a live stream with a single video track cycling
// through frames. frames must not be empty.
func NewStream(frames []image.Image) *Stream {
	return &Stream{
		ID:     uuid.NewString(),
		tracks: []*Track{newTrack("video")},
		frames: frames,
	}
}

// Tracks returns the stream's tracks.
func (s *Stream) Tracks() []*Track {
	return s.tracks
}

// LiveTracks counts tracks that have not been stopped.
func (s *Stream) LiveTracks() int {
	n := 0
	for _, t := range s.tracks {
		if t.Live() {
			n++
		}
	}
	return n
}

// Active reports whether any track is still live.
func (s *Stream) Active() bool {
	return s.LiveTracks() > 0
}

// Stop stops every track and returns how many were live.
func (s *Stream) Stop() int {
	n := 0
	for _, t := range s.tracks {
		if t.Stop() {
			n++
		}
	}
	return n
}

// Frame returns the current frame.
func (s *Stream) Frame() (image.Image, error) {
	if !s.Active() {
		return nil, apperrors.ErrStreamStopped
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[s.index], nil
}

// Advance moves to the next frame, wrapping at the end.
func (s *Stream) Advance() {
	s.mu.Lock()
	s.index = (s.index + 1) % len(s.frames)
	s.mu.Unlock()
}

// Snapshot copies the current frame so later frames do not affect it.
func (s *Stream) Snapshot() (*image.RGBA, error) {
	frame, err := s.Frame()
	if err != nil {
		return nil, err
	}
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), frame, b.Min, xdraw.Src)
	return dst, nil
}

// Source opens camera streams.
type Source interface {
	Open(ctx context.Context) (*Stream, error)
}
