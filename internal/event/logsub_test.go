package event

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Iron-Ham/townreport/internal/logging"
)

func TestAttachLogger(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus()
	AttachLogger(bus, logging.NewWriterLogger(&buf, "debug"))

	bus.Publish(NewViewActivatedEvent("title", "home", 3))
	bus.Publish(NewReportSubmittedEvent("r-1", "photo", "x", 10, 10))
	bus.Publish(NewNoticeEvent("warning", "no pin"))
	bus.Publish(NewStaleDiscardedEvent("camera.open", 1, 2))

	out := buf.String()
	for _, want := range []string{
		`"msg":"view activated"`,
		`"view":"home"`,
		`"report_id":"r-1"`,
		`"level":"WARN","msg":"notice"`,
		`"msg":"stale result discarded"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s\n%s", want, out)
		}
	}
}
