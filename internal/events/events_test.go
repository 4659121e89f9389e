package events

import (
	"errors"
	"testing"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	handler := func(event *Event) error {
		received = event
		callCount++
		return nil
	}

	bus.Subscribe(handler, EventBookingCreated)

	payload := BookingEventPayload{BookingID: 7, ItemName: "Drill", Status: "WAITING"}
	err := bus.PublishJSON(EventBookingCreated, payload)
	if err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	if received.Type != EventBookingCreated {
		t.Errorf("expected type %s, got %s", EventBookingCreated, received.Type)
	}
	if received.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	var decoded BookingEventPayload
	if err := received.Decode(&decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if decoded.BookingID != 7 || decoded.ItemName != "Drill" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe(func(_ *Event) error { count1++; return nil }, EventCommentAdded)
	bus.Subscribe(func(_ *Event) error { count2++; return errors.New("boom") }, EventCommentAdded)
	bus.Subscribe(func(_ *Event) error { count1++; return nil }, EventCommentAdded)

	bus.Publish(&Event{Type: EventCommentAdded})

	if count1 != 2 || count2 != 1 {
		t.Errorf("expected every handler to be called once, got %d and %d", count1, count2)
	}
}

func TestEventBusSubscribeMany(t *testing.T) {
	bus := NewEventBus()
	seen := map[string]int{}

	bus.Subscribe(func(e *Event) error { seen[e.Type]++; return nil }, AllEventTypes...)

	for _, eventType := range AllEventTypes {
		if err := bus.PublishJSON(eventType, struct{}{}); err != nil {
			t.Fatalf("PublishJSON(%s) failed: %v", eventType, err)
		}
	}

	for _, eventType := range AllEventTypes {
		if seen[eventType] != 1 {
			t.Errorf("expected %s to be seen once, got %d", eventType, seen[eventType])
		}
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	if err := bus.PublishJSON("nobody_listens", map[string]int{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventBusNil(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON(EventBookingCreated, nil); err != nil {
		t.Fatalf("nil bus should be a no-op, got %v", err)
	}
}

func TestPublishJSONMarshalError(t *testing.T) {
	bus := NewEventBus()
	if err := bus.PublishJSON(EventBookingCreated, make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}
