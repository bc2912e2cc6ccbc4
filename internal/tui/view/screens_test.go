package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/townreport/internal/geo"
	"github.com/Iron-Ham/townreport/internal/handler"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/mapview"
	"github.com/Iron-Ham/townreport/internal/media"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/session"
)

func catalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	cat, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n.New: %v", err)
	}
	return cat
}

func patternStream(t *testing.T) *media.Stream {
	t.Helper()
	stream, err := media.PatternSource{}.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return stream
}

func TestTitleView_Render(t *testing.T) {
	out := (&TitleView{Catalog: catalog(t)}).Render(80)
	for _, want := range []string{"Spot something in town?", "Start", "[enter]"} {
		if !strings.Contains(out, want) {
			t.Errorf("title missing %q", want)
		}
	}
}

func TestHomeView_Render(t *testing.T) {
	out := (&HomeView{Catalog: catalog(t), Name: "Aiko", Points: 30}).Render(80)
	if !strings.Contains(out, "Welcome, Aiko") {
		t.Error("expected greeting with name")
	}
	if !strings.Contains(out, "Points: 30") {
		t.Error("expected points")
	}
}

func TestCameraView_Render(t *testing.T) {
	cat := catalog(t)

	starting := (&CameraView{Catalog: cat}).Render(80)
	if !strings.Contains(starting, "Starting camera") {
		t.Error("expected starting message without a capture")
	}
	if strings.Contains(starting, "Upload") {
		t.Error("upload must be hidden before a snap")
	}

	failed := (&CameraView{Catalog: cat, Failed: true}).Render(80)
	if !strings.Contains(failed, "unavailable") {
		t.Error("expected unavailable message after a failed open")
	}

	stream := patternStream(t)
	capture := &session.CaptureSession{Stream: stream, Preview: stream}
	live := (&CameraView{Catalog: cat, Capture: capture}).Render(80)
	if !strings.Contains(live, "▀") {
		t.Error("expected preview blocks")
	}
	if strings.Contains(live, "Upload") {
		t.Error("upload must be hidden before a snap")
	}

	frame, err := stream.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	capture.Frozen = frame
	snapped := (&CameraView{Catalog: cat, Capture: capture}).Render(80)
	if !strings.Contains(snapped, "Upload") {
		t.Error("upload must be shown after a snap")
	}
}

func TestMapView_Render(t *testing.T) {
	cat := catalog(t)

	disabled := (&MapView{Catalog: cat}).Render(80)
	if !strings.Contains(disabled, "disabled") {
		t.Error("expected disabled placeholder")
	}

	m := mapview.New(geo.Shinjuku, 15)
	v := &MapView{Catalog: cat, Map: m, Enabled: true}
	out := v.Render(80)
	if !strings.Contains(out, "No pin yet") {
		t.Error("expected no-pin status")
	}

	m.ClickCursor()
	out = v.Render(80)
	if !strings.Contains(out, string(mapview.MarkerRune)) {
		t.Error("expected marker on the grid")
	}
	if !strings.Contains(out, "Pin: ") {
		t.Error("expected pin status")
	}

	v.Locating = true
	if !strings.Contains(v.Render(80), "Finding your location") {
		t.Error("expected locating hint")
	}
}

func TestMapOrigin_MatchesGrid(t *testing.T) {
	m := mapview.New(geo.Shinjuku, 15)
	m.ClickCursor()
	out := ansi.Strip((&MapView{Catalog: catalog(t), Map: m, Enabled: true}).Render(80))

	lines := strings.Split(out, "\n")
	cx, cy := m.Cursor().X, m.Cursor().Y
	row := MapOrigin.Y + cy
	if row >= len(lines) {
		t.Fatalf("row %d out of range (%d lines)", row, len(lines))
	}
	runes := []rune(lines[row])
	col := MapOrigin.X + cx
	if col >= len(runes) || runes[col] != mapview.MarkerRune {
		t.Errorf("marker not at origin+cursor: line %q", lines[row])
	}
}

func TestReportsView_Render(t *testing.T) {
	cat := catalog(t)

	empty := (&ReportsView{Catalog: cat}).Render(80)
	if !strings.Contains(empty, "No reports yet") {
		t.Error("expected empty message")
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	reports := []session.Report{
		{Text: "newer", CreatedAt: now.Add(-time.Minute)},
		{Text: "older", CreatedAt: now.Add(-2 * time.Hour)},
	}
	vp := viewport.New(72, 10)
	out := (&ReportsView{Catalog: cat, Reports: reports, Now: now, Viewport: &vp}).Render(80)
	if strings.Index(out, "newer") > strings.Index(out, "older") {
		t.Error("reports must keep their newest-first order")
	}
	if !strings.Contains(out, "2024/5/1 11:59:00") {
		t.Errorf("expected formatted timestamp in %q", out)
	}
}

func TestReportLines_Truncates(t *testing.T) {
	now := time.Now()
	r := session.Report{Text: strings.Repeat("x", 200), CreatedAt: now}
	line := ReportLines([]session.Report{r}, now, 40)
	if w := ansi.StringWidth(line); w > 40 {
		t.Errorf("line width = %d, want <= 40", w)
	}
	if !strings.HasSuffix(ansi.Strip(line), "…") {
		t.Error("expected ellipsis tail")
	}
}

func TestProfileView_Render(t *testing.T) {
	cat := catalog(t)
	p := session.Profile{Name: "Aiko"}

	out := (&ProfileView{Catalog: cat, Profile: p, Points: 20}).Render(80)
	for _, want := range []string{"Username: Aiko", "Points: 20", "No icon", "Change username", "Change icon"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile missing %q", want)
		}
	}

	prompt := (&ProfileView{Catalog: cat, Profile: p, Prompt: "> Ai"}).Render(80)
	if !strings.Contains(prompt, "Enter a new username") || strings.Contains(prompt, "Change icon") {
		t.Error("prompt should replace the buttons")
	}

	icon, err := patternStream(t).Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	p.Icon = icon
	withIcon := (&ProfileView{Catalog: cat, Profile: p}).Render(80)
	if strings.Contains(withIcon, "No icon") {
		t.Error("icon should replace the placeholder")
	}
}

func TestMenuBarView(t *testing.T) {
	cat := catalog(t)
	reg := navigator.DefaultRegistry()
	nav := navigator.New(reg, session.New("guest"), nil, nil)
	if err := nav.Activate(navigator.Map); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	bar := NewMenuBarView(cat, reg)
	out := bar.Render(80)
	for _, want := range []string{"1 Home", "3 Map", "5 Profile"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu missing %q", want)
		}
	}

	e, ok := bar.HitTest(0)
	if !ok || e.View != navigator.Home {
		t.Errorf("HitTest(0) = %v, %v; want home", e, ok)
	}
	if _, ok := bar.HitTest(1000); ok {
		t.Error("HitTest past the last tab should miss")
	}
}

func TestNoticeView_Render(t *testing.T) {
	cat := catalog(t)
	if (&NoticeView{Catalog: cat}).Render(80) != "" {
		t.Error("empty notice should render nothing")
	}
	n := handler.Notice{Level: handler.LevelError, Message: "Could not access the camera."}
	out := (&NoticeView{Catalog: cat, Notice: n}).Render(80)
	if !strings.Contains(out, "Could not access the camera.") || !strings.Contains(out, "[enter]") {
		t.Errorf("notice = %q", out)
	}
}
