// Package handler implements the actions behind the camera, map and profile
// screens. Handlers run on the UI event loop. Platform calls that block are
// split into a request half that runs in the background and an apply half
// that checks the result is still wanted.
package handler

import (
	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/i18n"
	"github.com/Iron-Ham/townreport/internal/logging"
	"github.com/Iron-Ham/townreport/internal/navigator"
	"github.com/Iron-Ham/townreport/internal/report"
	"github.com/Iron-Ham/townreport/internal/session"
)

// Level is a notice severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a blocking message for the user. The zero value means nothing
// to show.
type Notice struct {
	Level   Level
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Message == ""
}

// Deps are the collaborators shared by every handler.
type Deps struct {
	Nav     *navigator.Navigator
	State   *session.State
	Reports *report.Service
	Catalog *i18n.Catalog
	Bus     *event.Bus
	Logger  *logging.Logger
}

func (d Deps) logger() *logging.Logger {
	if d.Logger == nil {
		return logging.NopLogger()
	}
	return d.Logger
}

func (d Deps) publish(e event.Event) {
	if d.Bus != nil {
		d.Bus.Publish(e)
	}
}

func (d Deps) notice(level Level, id string, data map[string]any) Notice {
	n := Notice{Level: level, Message: d.Catalog.Tf(id, data)}
	d.publish(event.NewNoticeEvent(string(level), n.Message))
	return n
}

// LevelFor maps the severity carried by err to a notice level.
func LevelFor(err error) Level {
	switch apperrors.GetSeverity(err) {
	case apperrors.SeverityDebug, apperrors.SeverityInfo:
		return LevelInfo
	case apperrors.SeverityWarning:
		return LevelWarning
	default:
		return LevelError
	}
}

// fail logs err at its severity and returns the notice for id, leveled by
// that same severity, together with err.
func (d Deps) fail(err error, id string, data map[string]any) (Notice, error) {
	sev := apperrors.GetSeverity(err)
	args := []any{"error", err, "severity", sev.String(), "user_facing", apperrors.IsUserFacing(err)}
	log := d.logger()
	switch sev {
	case apperrors.SeverityDebug:
		log.Debug(id, args...)
	case apperrors.SeverityInfo:
		log.Info(id, args...)
	case apperrors.SeverityWarning:
		log.Warn(id, args...)
	default:
		log.Error(id, args...)
	}
	return d.notice(LevelFor(err), id, data), err
}

// stale reports whether a result issued under gen for view should be
// dropped, publishing a StaleDiscardedEvent when it is.
func (d Deps) stale(request string, gen uint64, view navigator.View) bool {
	if d.State.Current(gen) && d.Nav.Active() == view {
		return false
	}
	d.publish(event.NewStaleDiscardedEvent(request, gen, d.State.Generation()))
	return true
}
