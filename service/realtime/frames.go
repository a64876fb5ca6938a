package realtime

import (
	"encoding/json"
)

// Inbound event names (client -> server).
const (
	EventJoin        = "join-event"
	EventLeave       = "leave-event"
	EventSendMessage = "send-message"
	EventTypingStart = "typing-start"
	EventTypingStop  = "typing-stop"
)

// Outbound event names (server -> client).
const (
	EventPresenceUpdate = "presence-update"
	EventUserPresent    = "user-present"
	EventUserLeft       = "user-left"
	EventNewMessage     = "new-message"
)

// Domain notification events, emitted by the HTTP layer after persisting a
// change. Broadcast globally; clients filter on the embedded eventId.
const (
	EventAttendeeAdded       = "attendee-added"
	EventAttendeeRemoved     = "attendee-removed"
	EventSegmentAttendeeLeft = "segment-attendee-left"
	EventContributionAdded   = "contribution-added"
	EventContributionUpdated = "contribution-updated"
	EventContributionDeleted = "contribution-deleted"
	EventInvitationReceived  = "invitation-received"
	EventInvitationRsvpd     = "invitation-rsvpd"
)

// Frame is the wire format: a named event plus a JSON payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodeFrame marshals an outbound frame.
func EncodeFrame(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: payload})
}

type joinPayload struct {
	EventID string `json:"eventId"`
}

type messagePayload struct {
	Message string `json:"message"`
}
