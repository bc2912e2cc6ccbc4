// Package internal contains integration tests that run whole report flows
// across the navigator, handlers, event bus and log.
package internal

import (
	"context"
	"strings"
	"testing"

	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/session"
	"github.com/Iron-Ham/townreport/internal/testutil"
)

// TestPhotoReportCycle walks title -> home -> camera -> upload -> home.
func TestPhotoReportCycle(t *testing.T) {
	w := testutil.NewWorld(t, testutil.Options{})
	ctx := context.Background()

	w.Activate(t, navigator.Home)
	gen := w.Activate(t, navigator.Camera)

	if !w.Camera.Enter() {
		t.Fatal("first camera entry should request a stream")
	}
	res := w.Camera.Open(ctx, gen)
	if _, err := w.Camera.Attach(res); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if _, err := w.Camera.Snap(); err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if _, err := w.Camera.Upload(ctx); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if w.Nav.Active() != navigator.Home {
		t.Errorf("active = %v, want home", w.Nav.Active())
	}
	if w.State.Capture != nil || res.Stream.LiveTracks() != 0 {
		t.Error("capture must be torn down when leaving the camera")
	}
	if w.State.Points != session.PointsPerReport {
		t.Errorf("points = %d, want %d", w.State.Points, session.PointsPerReport)
	}
	if len(w.State.Reports) != 1 || w.State.Reports[0].Kind != session.KindPhoto {
		t.Errorf("reports = %+v", w.State.Reports)
	}

	if got := len(w.Events.OfType(event.TypeCaptureStopped)); got != 1 {
		t.Errorf("capture.stopped events = %d, want 1", got)
	}
	if got := len(w.Events.OfType(event.TypeReportSubmitted)); got != 1 {
		t.Errorf("report.submitted events = %d, want 1", got)
	}
}

// TestMapReportCycle pins a location, files it and checks the pin is gone.
func TestMapReportCycle(t *testing.T) {
	w := testutil.NewWorld(t, testutil.Options{})
	ctx := context.Background()

	gen := w.Activate(t, navigator.Map)
	if !w.Map.Enter() {
		t.Fatal("enabled map should request a location")
	}
	w.Map.ApplyLocation(w.Map.Locate(ctx, gen))
	if got := w.State.Map.Center(); got != testutil.FixedPosition {
		t.Fatalf("center = %v, want %v", got, testutil.FixedPosition)
	}

	if w.Map.ClickCursor() == nil {
		t.Fatal("expected a marker")
	}
	if _, err := w.Map.ReportLocation(ctx); err != nil {
		t.Fatalf("ReportLocation: %v", err)
	}

	if w.Nav.Active() != navigator.Home || w.State.HasPin() {
		t.Errorf("active = %v, pin = %v", w.Nav.Active(), w.State.HasPin())
	}
	if got := len(w.Events.OfType(event.TypePinCleared)); got != 1 {
		t.Errorf("pin.cleared events = %d, want 1", got)
	}
	if w.State.Reports[0].Kind != session.KindLocation {
		t.Errorf("kind = %q", w.State.Reports[0].Kind)
	}
}

// TestReportsAccumulateNewestFirst files two reports and checks ordering
// and the running total.
func TestReportsAccumulateNewestFirst(t *testing.T) {
	w := testutil.NewWorld(t, testutil.Options{})
	ctx := context.Background()

	gen := w.Activate(t, navigator.Map)
	w.Map.Enter()
	w.Map.ApplyLocation(w.Map.Locate(ctx, gen))
	w.Map.ClickCursor()
	if _, err := w.Map.ReportLocation(ctx); err != nil {
		t.Fatal(err)
	}

	gen = w.Activate(t, navigator.Camera)
	w.Camera.Enter()
	if _, err := w.Camera.Attach(w.Camera.Open(ctx, gen)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Camera.Snap(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Camera.Upload(ctx); err != nil {
		t.Fatal(err)
	}

	if w.State.Points != 2*session.PointsPerReport {
		t.Errorf("points = %d", w.State.Points)
	}
	if len(w.State.Reports) != 2 {
		t.Fatalf("reports = %d", len(w.State.Reports))
	}
	if w.State.Reports[0].Kind != session.KindPhoto || w.State.Reports[1].Kind != session.KindLocation {
		t.Errorf("order = %s, %s", w.State.Reports[0].Kind, w.State.Reports[1].Kind)
	}
}

// TestUnknownViewLeavesStateAlone checks a failed activation publishes
// nothing and keeps the current view.
func TestUnknownViewLeavesStateAlone(t *testing.T) {
	w := testutil.NewWorld(t, testutil.Options{})
	w.Activate(t, navigator.Reports)
	w.Events.Reset()
	gen := w.State.Generation()

	if err := w.Nav.Activate(navigator.View(99)); err == nil {
		t.Fatal("expected lookup error")
	}
	if w.Nav.Active() != navigator.Reports || w.State.Generation() != gen {
		t.Error("failed activation must not change state")
	}
	if types := w.Events.Types(); len(types) != 0 {
		t.Errorf("events = %v", types)
	}
}

// TestEventsReachTheLog attaches the log subscriber and reads the entries
// back the way `townreport logs` does.
func TestEventsReachTheLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, logging.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	w := testutil.NewWorld(t, testutil.Options{Logger: logger})
	event.AttachLogger(w.Bus, logger)

	w.Activate(t, navigator.Home)
	gen := w.Activate(t, navigator.Map)
	w.Activate(t, navigator.Home)
	w.Map.ApplyLocation(w.Map.Locate(context.Background(), gen))
	_ = logger.Close()

	entries, err := logging.AggregateLogs(dir)
	if err != nil {
		t.Fatalf("AggregateLogs: %v", err)
	}

	activated := logging.FilterLogs(entries, logging.LogFilter{MessageContains: "view activated"})
	if len(activated) != 3 {
		t.Fatalf("view activated entries = %d, want 3", len(activated))
	}
	if activated[1].View != "map" {
		t.Errorf("second activation view = %q, want map", activated[1].View)
	}

	var stale bool
	for _, e := range entries {
		if strings.Contains(e.Message, "stale result discarded") && e.Attrs["request"] == "geo.locate" {
			stale = true
		}
	}
	if !stale {
		t.Error("late geolocation result should be logged as discarded")
	}
}
