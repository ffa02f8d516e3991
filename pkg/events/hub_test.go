package events

import (
	"testing"
	"time"
)

func TestHubPublishFanout(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish(BatteryAlert, BatteryAlertEvent{Level: "low", Percentage: 14})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Name != BatteryAlert {
				t.Fatalf("event name = %q, want %q", ev.Name, BatteryAlert)
			}
			payload, err := DecodeAs[BatteryAlertEvent](ev)
			if err != nil {
				t.Fatalf("DecodeAs() error: %v", err)
			}
			if payload.Percentage != 14 {
				t.Fatalf("payload percentage = %d, want 14", payload.Percentage)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHubSlowSubscriberDropped(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	// Fill the buffer past capacity; extra events must be dropped, not block.
	for i := 0; i < 64; i++ {
		h.Publish(BatterySnapshot, nil)
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained > 16 {
		t.Fatalf("drained %d events, want between 1 and the channel capacity", drained)
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after Unsubscribe")
	}

	// Unsubscribing twice must not panic.
	h.Unsubscribe(ch)
}
