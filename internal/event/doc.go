// Package event provides a synchronous pub-sub bus that decouples the
// navigator and report handlers from logging and the TUI.
//
// # Main Types
//
//   - [Event]: interface with EventType() and Timestamp()
//   - [Bus]: synchronous dispatcher, safe for concurrent use
//   - [Handler]: func(Event)
//
// # Event Categories
//
// Navigation:
//   - [ViewActivatedEvent]: every navigator transition
//   - [CaptureStoppedEvent]: camera stream torn down on leaving the camera view
//   - [PinClearedEvent]: map marker detached on leaving the map view
//
// Reports:
//   - [ReportSubmittedEvent]: a photo or location report awarded points
//   - [ProfileUpdatedEvent]: display name or icon changed
//
// Status:
//   - [NoticeEvent]: a blocking notice was shown
//   - [StaleDiscardedEvent]: a late async result was dropped
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeViewActivated, func(e event.Event) {
//	    ev := e.(event.ViewActivatedEvent)
//	    fmt.Println(ev.From, "->", ev.To)
//	})
//	bus.Publish(event.NewViewActivatedEvent("home", "camera", 3))
package event
