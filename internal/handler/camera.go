package handler

import (
	"context"

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/imaging"
	"github.com/Iron-Ham/townreport/internal/media"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/report"
	"github.com/Iron-Ham/townreport/internal/session"
)

// StreamResult is the outcome of a camera open request.
type StreamResult struct {
	Generation uint64
	Stream     *media.Stream
	Err        error
}

// Camera drives the photo report flow.
type Camera struct {
	Deps
	source media.Source
}

// NewCamera creates the camera handler.
func NewCamera(deps Deps, source media.Source) *Camera {
	return &Camera{Deps: deps, source: source}
}

// Enter prepares the camera view after it was activated. It reports whether
// a stream must be requested; a live capture is reused with its frozen frame
// discarded.
func (c *Camera) Enter() bool {
	if capture := c.State.Capture; capture != nil && capture.Stream.Active() {
		capture.Frozen = nil
		capture.Preview = capture.Stream
		return false
	}
	return true
}

// Open requests a stream. It blocks and is safe to call off the event loop.
func (c *Camera) Open(ctx context.Context, gen uint64) StreamResult {
	stream, err := c.source.Open(ctx)
	return StreamResult{Generation: gen, Stream: stream, Err: err}
}

// Attach binds an opened stream to the preview. Results for an older view
// generation, or arriving after the camera view was left, are discarded
// and their stream stopped.
func (c *Camera) Attach(res StreamResult) (Notice, error) {
	if c.stale("camera.open", res.Generation, navigator.Camera) {
		if res.Stream != nil {
			res.Stream.Stop()
		}
		return Notice{}, nil
	}
	if res.Err != nil {
		if apperrors.Is(res.Err, apperrors.ErrPermissionDenied) {
			return c.fail(res.Err, "camera.denied", nil)
		}
		return c.fail(res.Err, "camera.unavailable", nil)
	}

	if old := c.State.Capture; old != nil {
		old.Teardown()
	}
	c.State.Capture = &session.CaptureSession{Stream: res.Stream, Preview: res.Stream}
	c.logger().WithView(navigator.Camera.String()).Info("camera started", "stream_id", res.Stream.ID)
	return Notice{}, nil
}

// Tick advances the live preview one frame.
func (c *Camera) Tick() {
	capture := c.State.Capture
	if capture == nil || capture.Preview == nil || capture.Frozen != nil {
		return
	}
	capture.Preview.Advance()
}

// Snap freezes the current frame and makes upload available.
func (c *Camera) Snap() (Notice, error) {
	capture := c.State.Capture
	if capture == nil || capture.Preview == nil {
		return c.fail(apperrors.NewPreconditionError("snap", apperrors.ErrDeviceUnavailable), "camera.unavailable", nil)
	}
	frame, err := capture.Preview.Snapshot()
	if err != nil {
		return c.fail(apperrors.NewPreconditionError("snap", err), "camera.unavailable", nil)
	}
	capture.Frozen = frame
	return Notice{}, nil
}

// CanUpload reports whether a frame has been captured.
func (c *Camera) CanUpload() bool {
	return c.State.Capture.Snapped()
}

// Upload files the captured frame as a photo report and returns home.
func (c *Camera) Upload(ctx context.Context) (Notice, error) {
	if !c.CanUpload() {
		return c.fail(apperrors.NewPreconditionError("upload", apperrors.ErrNoSnapshot), "camera.no_snapshot", nil)
	}

	url, err := imaging.DataURL(c.State.Capture.Frozen)
	if err != nil {
		return c.fail(err, "report.failed", nil)
	}
	sub := report.Submission{Kind: session.KindPhoto, Payload: url}
	if _, err := c.Reports.File(ctx, sub, c.Catalog.T("report.photo")); err != nil {
		return c.fail(err, "report.failed", nil)
	}

	n := c.notice(LevelInfo, "camera.uploaded", nil)
	if err := c.Nav.Activate(navigator.Home); err != nil {
		return n, err
	}
	return n, nil
}
