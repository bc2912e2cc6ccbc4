package view

import (
	"image"
	"strings"

	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/imaging"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/tui/styles"
)

// PreviewRows is the height of the camera preview in terminal rows.
const PreviewRows = 12

// CameraView renders the camera screen.
type CameraView struct {
	Catalog *i18n.Catalog
	// Capture is the current capture session; nil while the stream is
	// still being requested or after it failed.
	Capture *session.CaptureSession
	// Failed is set when the last open request failed.
	Failed bool
}

// Render renders the preview, or the frozen frame after a snap, followed
// by the snap and upload buttons.
func (v *CameraView) Render(width int) string {
	var b strings.Builder
	b.WriteString(heading(v.Catalog.T("camera.heading"), width))
	b.WriteString("\n")

	switch frame := v.frame(); {
	case frame != nil:
		b.WriteString(imaging.RenderBlocks(frame, previewCols(width), PreviewRows))
	case v.Failed:
		b.WriteString(styles.Error.Render(v.Catalog.T("camera.unavailable")))
	default:
		b.WriteString(styles.Muted.Render(v.Catalog.T("camera.starting")))
	}
	b.WriteString("\n\n")

	b.WriteString(renderButton("s", v.Catalog.T("camera.snap")))
	if v.Capture.Snapped() {
		b.WriteString("  ")
		b.WriteString(renderButton("u", v.Catalog.T("camera.upload")))
	}

	return styles.ContentBox.Width(width - 4).Render(b.String())
}

func (v *CameraView) frame() image.Image {
	if v.Capture == nil {
		return nil
	}
	if v.Capture.Frozen != nil {
		return v.Capture.Frozen
	}
	if v.Capture.Preview == nil {
		return nil
	}
	img, err := v.Capture.Preview.Frame()
	if err != nil {
		return nil
	}
	return img
}

// previewCols keeps a 4:3 preview inside the content box.
func previewCols(width int) int {
	cols := PreviewRows * 2 * 4 / 3
	if maxCols := width - 10; cols > maxCols {
		cols = maxCols
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}
