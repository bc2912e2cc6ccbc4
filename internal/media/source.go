package media

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Iron-Ham/townreport/internal/config"
	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/imaging"
)

// NewSource builds the camera source described by cfg.
func NewSource(cfg config.CameraConfig) Source {
	switch {
	case cfg.Deny:
		return DeniedSource{}
	case cfg.Source != "":
		return FileSource{Path: cfg.Source}
	default:
		return PatternSource{}
	}
}

// PatternSource generates animated color bars.
type PatternSource struct {
	Width, Height int
	Frames        int
	Delay         time.Duration
}

var bars = []color.RGBA{
	{192, 192, 192, 255},
	{192, 192, 0, 255},
	{0, 192, 192, 255},
	{0, 192, 0, 255},
	{192, 0, 192, 255},
	{192, 0, 0, 255},
	{0, 0, 192, 255},
}

// Open implements Source.
func (p PatternSource) Open(ctx context.Context) (*Stream, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return nil, err
	}
	w, h, n := p.Width, p.Height, p.Frames
	if w <= 0 {
		w = 64
	}
	if h <= 0 {
		h = 48
	}
	if n <= 0 {
		n = 8
	}

	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = patternFrame(w, h, i*h/n)
	}
	return NewStream(frames), nil
}

// patternFrame draws vertical bars with a white scan line at row scan.
func patternFrame(w, h, scan int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bars[x*len(bars)/w]
			if y == scan {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FileSource replays an image file, or every image in a directory in name
// order, as camera frames.
type FileSource struct {
	Path string
}

// Open implements Source.
func (f FileSource) Open(ctx context.Context) (*Stream, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDeviceUnavailable, err.Error())
	}

	paths := []string{f.Path}
	if info.IsDir() {
		entries, err := os.ReadDir(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame directory: %w", err)
		}
		paths = paths[:0]
		for _, e := range entries {
			if !e.IsDir() && imaging.IsSupported(e.Name()) {
				paths = append(paths, filepath.Join(f.Path, e.Name()))
			}
		}
		sort.Strings(paths)
	}

	frames := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := imaging.LoadFile(p)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	if len(frames) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrDeviceUnavailable, "no frames in %s", f.Path)
	}
	return NewStream(frames), nil
}

// DeniedSource refuses every request as if the user declined camera access.
type DeniedSource struct {
	Delay time.Duration
}

// Open implements Source.
func (d DeniedSource) Open(ctx context.Context) (*Stream, error) {
	if err := sleep(ctx, d.Delay); err != nil {
		return nil, err
	}
	return nil, apperrors.NewPermissionError("camera", apperrors.ErrPermissionDenied)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
