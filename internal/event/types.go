package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier such as "view.activated".
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeViewActivated   = "view.activated"
	TypeCaptureStopped  = "capture.stopped"
	TypePinCleared      = "pin.cleared"
	TypeReportSubmitted = "report.submitted"
	TypeNotice          = "notice.shown"
	TypeStaleDiscarded  = "async.stale_discarded"
	TypeProfileUpdated  = "profile.updated"
)

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// -----------------------------------------------------------------------------
// Navigation Events
// -----------------------------------------------------------------------------

// ViewActivatedEvent is emitted after every navigator transition,
// including re-activation of the current view.
type ViewActivatedEvent struct {
	baseEvent
	From       string
	To         string
	Generation uint64
}

// NewViewActivatedEvent creates a ViewActivatedEvent.
func NewViewActivatedEvent(from, to string, generation uint64) ViewActivatedEvent {
	return ViewActivatedEvent{
		baseEvent:  newBaseEvent(TypeViewActivated),
		From:       from,
		To:         to,
		Generation: generation,
	}
}

// CaptureStoppedEvent is emitted when a camera stream is torn down.
type CaptureStoppedEvent struct {
	baseEvent
	StreamID string
	Tracks   int
}

// NewCaptureStoppedEvent creates a CaptureStoppedEvent.
func NewCaptureStoppedEvent(streamID string, tracks int) CaptureStoppedEvent {
	return CaptureStoppedEvent{
		baseEvent: newBaseEvent(TypeCaptureStopped),
		StreamID:  streamID,
		Tracks:    tracks,
	}
}

// PinClearedEvent is emitted when a map marker is detached on leaving the map.
type PinClearedEvent struct {
	baseEvent
	Lat float64
	Lng float64
}

// NewPinClearedEvent creates a PinClearedEvent.
func NewPinClearedEvent(lat, lng float64) PinClearedEvent {
	return PinClearedEvent{
		baseEvent: newBaseEvent(TypePinCleared),
		Lat:       lat,
		Lng:       lng,
	}
}

// -----------------------------------------------------------------------------
// Report Events
// -----------------------------------------------------------------------------

// ReportSubmittedEvent is emitted when a report is accepted and points awarded.
type ReportSubmittedEvent struct {
	baseEvent
	ReportID    string
	Kind        string // "photo" or "location"
	Text        string
	Awarded     int
	TotalPoints int
}

// NewReportSubmittedEvent creates a ReportSubmittedEvent.
func NewReportSubmittedEvent(id, kind, text string, awarded, total int) ReportSubmittedEvent {
	return ReportSubmittedEvent{
		baseEvent:   newBaseEvent(TypeReportSubmitted),
		ReportID:    id,
		Kind:        kind,
		Text:        text,
		Awarded:     awarded,
		TotalPoints: total,
	}
}

// ProfileUpdatedEvent is emitted when the display name or icon changes.
type ProfileUpdatedEvent struct {
	baseEvent
	Field string // "name" or "icon"
	Value string
}

// NewProfileUpdatedEvent creates a ProfileUpdatedEvent.
func NewProfileUpdatedEvent(field, value string) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		baseEvent: newBaseEvent(TypeProfileUpdated),
		Field:     field,
		Value:     value,
	}
}

// -----------------------------------------------------------------------------
// Status Events
// -----------------------------------------------------------------------------

// NoticeEvent is emitted whenever a blocking notice is raised to the user.
type NoticeEvent struct {
	baseEvent
	Level   string // "info", "warning" or "error"
	Message string
}

// NewNoticeEvent creates a NoticeEvent.
func NewNoticeEvent(level, message string) NoticeEvent {
	return NoticeEvent{
		baseEvent: newBaseEvent(TypeNotice),
		Level:     level,
		Message:   message,
	}
}

// StaleDiscardedEvent is emitted when an async platform result arrives for
// a view generation that is no longer current.
type StaleDiscardedEvent struct {
	baseEvent
	Request string
	Issued  uint64
	Current uint64
}

// NewStaleDiscardedEvent creates a StaleDiscardedEvent.
func NewStaleDiscardedEvent(request string, issued, current uint64) StaleDiscardedEvent {
	return StaleDiscardedEvent{
		baseEvent: newBaseEvent(TypeStaleDiscarded),
		Request:   request,
		Issued:    issued,
		Current:   current,
	}
}
