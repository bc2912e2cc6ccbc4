package event

import (
	"sync"
	"testing"
)

func TestBus_SubscribeAndPublish(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TypeViewActivated, func(e Event) {
		ev := e.(ViewActivatedEvent)
		got = append(got, ev.From+"->"+ev.To)
	})

	bus.Publish(NewViewActivatedEvent("title", "home", 1))
	bus.Publish(NewNoticeEvent("info", "ignored by this subscriber"))

	if len(got) != 1 || got[0] != "title->home" {
		t.Errorf("got %v, want [title->home]", got)
	}
}

func TestBus_SpecificBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "all") })
	bus.Subscribe(TypePinCleared, func(Event) { order = append(order, "specific") })

	bus.Publish(NewPinClearedEvent(35.6, 139.7))

	if len(order) != 2 || order[0] != "specific" || order[1] != "all" {
		t.Errorf("order = %v, want [specific all]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	id := bus.Subscribe(TypeNotice, func(Event) { calls++ })
	other := bus.Subscribe(TypeNotice, func(Event) {})

	if id == other {
		t.Fatalf("subscription IDs must be unique, both %q", id)
	}
	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe returned false for a live subscription")
	}
	if bus.Unsubscribe(id) {
		t.Error("second Unsubscribe should return false")
	}

	bus.Publish(NewNoticeEvent("info", "x"))
	if calls != 0 {
		t.Errorf("removed handler called %d times", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	bus := NewBus()

	var recovered any
	bus.OnPanic(func(_ Event, r any, _ []byte) { recovered = r })

	delivered := false
	bus.Subscribe(TypeCaptureStopped, func(Event) { panic("boom") })
	bus.Subscribe(TypeCaptureStopped, func(Event) { delivered = true })

	bus.Publish(NewCaptureStoppedEvent("stream-1", 1))

	if recovered != "boom" {
		t.Errorf("recovered = %v, want boom", recovered)
	}
	if !delivered {
		t.Error("handler after the panicking one was not called")
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.SubscribeAll(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewReportSubmittedEvent("r", "photo", "t", 10, 10))
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}
}

func TestEvent_Timestamps(t *testing.T) {
	events := []Event{
		NewViewActivatedEvent("a", "b", 1),
		NewCaptureStoppedEvent("s", 1),
		NewPinClearedEvent(1, 2),
		NewReportSubmittedEvent("r", "location", "t", 10, 20),
		NewProfileUpdatedEvent("name", "taro"),
		NewNoticeEvent("warning", "m"),
		NewStaleDiscardedEvent("camera.open", 1, 2),
	}
	for _, e := range events {
		if e.Timestamp().IsZero() {
			t.Errorf("%s has zero timestamp", e.EventType())
		}
		if e.EventType() == "" {
			t.Error("empty event type")
		}
	}
}
