package event

import "github.com/Iron-Ham/townreport/internal/logging"

// AttachLogger subscribes a handler that logs every event published on bus.
// It returns the subscription ID.
func AttachLogger(bus *Bus, logger *logging.Logger) string {
	return bus.SubscribeAll(func(e Event) {
		switch ev := e.(type) {
		case ViewActivatedEvent:
			logger.WithView(ev.To).Info("view activated", "from", ev.From, "generation", ev.Generation)
		case CaptureStoppedEvent:
			logger.Info("capture stopped", "stream_id", ev.StreamID, "tracks", ev.Tracks)
		case PinClearedEvent:
			logger.Info("pin cleared", "lat", ev.Lat, "lng", ev.Lng)
		case ReportSubmittedEvent:
			logger.WithReport(ev.ReportID).Info("report submitted",
				"kind", ev.Kind, "awarded", ev.Awarded, "total_points", ev.TotalPoints)
		case ProfileUpdatedEvent:
			logger.Info("profile updated", "field", ev.Field)
		case NoticeEvent:
			switch ev.Level {
			case "error":
				logger.Error("notice", "message", ev.Message)
			case "warning":
				logger.Warn("notice", "message", ev.Message)
			default:
				logger.Info("notice", "message", ev.Message)
			}
		case StaleDiscardedEvent:
			logger.Debug("stale result discarded",
				"request", ev.Request, "issued", ev.Issued, "current", ev.Current)
		default:
			logger.Debug("event", "type", e.EventType())
		}
	})
}
