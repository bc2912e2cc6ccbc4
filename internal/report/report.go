// Package report files completed reports: it forwards the capture payload
// to the submitter, awards points and records the report in the session.
package report

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/geo"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/session"
)

// Submission is what gets forwarded for one report.
type Submission struct {
	Kind string
	// Payload is the photo data URL for photo reports.
	Payload string
	// Position is set for location reports.
	Position *geo.Coordinate
}

// Submitter forwards a submission somewhere.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// LogSubmitter writes submissions to the log instead of uploading them.
type LogSubmitter struct {
	Logger *logging.Logger
}

// previewLen caps how much of a payload is logged.
const previewLen = 64

// Submit implements Submitter.
func (l LogSubmitter) Submit(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	args := []any{"kind", s.Kind}
	if s.Payload != "" {
		preview := s.Payload
		if len(preview) > previewLen {
			preview = preview[:previewLen] + "..."
		}
		args = append(args, "payload_bytes", len(s.Payload), "payload", preview)
	}
	if s.Position != nil {
		args = append(args, "lat", s.Position.Lat, "lng", s.Position.Lng)
	}
	logger.Info("report uploaded", args...)
	return nil
}

// Service completes reports against the session.
type Service struct {
	state     *session.State
	submitter Submitter
	bus       *event.Bus
	logger    *logging.Logger
}

// NewService creates a Service. bus and logger may be nil.
func NewService(state *session.State, submitter Submitter, bus *event.Bus, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Service{state: state, submitter: submitter, bus: bus, logger: logger}
}

// File submits s, awards PointsPerReport and prepends a report with text.
// Nothing changes if the submitter fails.
func (svc *Service) File(ctx context.Context, s Submission, text string) (session.Report, error) {
	if err := svc.submitter.Submit(ctx, s); err != nil {
		return session.Report{}, fmt.Errorf("failed to submit %s report: %w", s.Kind, err)
	}

	total := svc.state.AddPoints(session.PointsPerReport)
	r := svc.state.AddReport(s.Kind, text)

	svc.logger.WithReport(r.ID).Info("report filed",
		"kind", r.Kind,
		"awarded", session.PointsPerReport,
		"total_points", total)
	if svc.bus != nil {
		svc.bus.Publish(event.NewReportSubmittedEvent(r.ID, r.Kind, r.Text, session.PointsPerReport, total))
	}
	return r, nil
}
