package realtime

import (
	"testing"
)

func TestDispatchJoinAndMessage(t *testing.T) {
	h := NewHub()
	d := NewDispatcher()
	alice := joined(h, "alice")

	f, err := ParseFrame([]byte(`{"event":"join-event","data":{"eventId":"evt1"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Dispatch(h, alice, f); err != nil {
		t.Fatalf("dispatch join: %v", err)
	}
	if got := recvFrame(t, alice); got.Event != EventPresenceUpdate {
		t.Fatalf("got %s, want %s", got.Event, EventPresenceUpdate)
	}

	f, err = ParseFrame([]byte(`{"event":"send-message","data":{"message":"hi"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Dispatch(h, alice, f); err != nil {
		t.Fatalf("dispatch message: %v", err)
	}
	if got := recvFrame(t, alice); got.Event != EventNewMessage {
		t.Fatalf("got %s, want %s", got.Event, EventNewMessage)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	h := NewHub()
	d := NewDispatcher()
	alice := joined(h, "alice")

	f := &Frame{Event: "mystery-event"}
	if err := d.Dispatch(h, alice, f); err == nil {
		t.Fatal("expected error for unknown event")
	}
}

func TestDispatchBadPayload(t *testing.T) {
	h := NewHub()
	d := NewDispatcher()
	alice := joined(h, "alice")

	f, err := ParseFrame([]byte(`{"event":"join-event","data":"not-an-object"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Dispatch(h, alice, f); err == nil {
		t.Fatal("expected error for malformed join payload")
	}
	expectNoFrame(t, alice)
}
