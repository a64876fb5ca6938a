package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

// test conns have no websocket attached; frames queue up in Send and the
// tests read them straight out.
func testConn(id, userID string) *Conn {
	return NewConn(id, userID, nil)
}

func recvFrame(t *testing.T, c *Conn) *Frame {
	t.Helper()
	select {
	case raw := <-c.Send:
		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("bad frame %q: %v", raw, err)
		}
		return &f
	default:
		t.Fatalf("no frame queued for conn=%s", c.ID)
	}
	return nil
}

func expectNoFrame(t *testing.T, c *Conn) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected frame for conn=%s: %s", c.ID, raw)
	default:
	}
}

func decodeData(t *testing.T, f *Frame, into any) {
	t.Helper()
	if err := json.Unmarshal(f.Data, into); err != nil {
		t.Fatalf("decode %s payload: %v", f.Event, err)
	}
}

func joined(h *Hub, userID string) *Conn {
	c := testConn("conn-"+userID, userID)
	h.Register(c)
	return c
}

func TestJoinSnapshotIncludesSelf(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")

	h.Join(alice, "evt1")

	f := recvFrame(t, alice)
	if f.Event != EventPresenceUpdate {
		t.Fatalf("expected %s, got %s", EventPresenceUpdate, f.Event)
	}
	var p presencePayload
	decodeData(t, f, &p)
	if p.EventID != "evt1" {
		t.Errorf("eventId = %q, want evt1", p.EventID)
	}
	if len(p.PresentUsers) != 1 || p.PresentUsers[0] != "alice" {
		t.Errorf("presentUsers = %v, want [alice]", p.PresentUsers)
	}
}

func TestSecondJoinerSeesBothAndFirstGetsDelta(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")

	h.Join(alice, "evt1")
	recvFrame(t, alice) // alice's own snapshot

	h.Join(bob, "evt1")

	f := recvFrame(t, bob)
	var p presencePayload
	decodeData(t, f, &p)
	if len(p.PresentUsers) != 2 {
		t.Fatalf("bob snapshot = %v, want both users", p.PresentUsers)
	}
	if p.PresentUsers[0] != "alice" || p.PresentUsers[1] != "bob" {
		t.Errorf("bob snapshot = %v, want [alice bob]", p.PresentUsers)
	}

	f = recvFrame(t, alice)
	if f.Event != EventUserPresent {
		t.Fatalf("alice got %s, want %s", f.Event, EventUserPresent)
	}
	var up userRoomPayload
	decodeData(t, f, &up)
	if up.UserID != "bob" || up.EventID != "evt1" {
		t.Errorf("user-present = %+v", up)
	}
	expectNoFrame(t, bob) // no echo of bob's own join
}

func TestMultiConnJoinBroadcastsOnce(t *testing.T) {
	h := NewHub()
	bob := joined(h, "bob")
	h.Join(bob, "evt1")
	recvFrame(t, bob)

	c1 := testConn("alice-1", "alice")
	c2 := testConn("alice-2", "alice")
	h.Register(c1)
	h.Register(c2)

	h.Join(c1, "evt1")
	f := recvFrame(t, bob)
	if f.Event != EventUserPresent {
		t.Fatalf("bob got %s, want %s", f.Event, EventUserPresent)
	}

	h.Join(c2, "evt1")
	// the second tab still gets its own snapshot
	f = recvFrame(t, c2)
	if f.Event != EventPresenceUpdate {
		t.Fatalf("c2 got %s, want %s", f.Event, EventPresenceUpdate)
	}
	var p presencePayload
	decodeData(t, f, &p)
	if len(p.PresentUsers) != 2 {
		t.Errorf("snapshot = %v, alice must appear exactly once", p.PresentUsers)
	}
	// but the room hears nothing new
	expectNoFrame(t, bob)
}

func TestJoinSameConnTwiceIsIdempotent(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(bob, "evt1")
	recvFrame(t, bob)
	h.Join(alice, "evt1")
	recvFrame(t, alice)
	recvFrame(t, bob)

	h.Join(alice, "evt1")
	recvFrame(t, alice) // snapshot again, fine
	expectNoFrame(t, bob)

	if users := h.rooms.presentUsers("evt1"); len(users) != 2 {
		t.Errorf("presence = %v, want 2 users", users)
	}
}

func TestLeaveRemovesPresenceAndRoom(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	h.Join(alice, "evt1")
	recvFrame(t, alice)

	h.Leave(alice, "evt1")

	if h.rooms.inRoom("evt1", "alice") {
		t.Error("alice still present after leave")
	}
	if _, ok := h.rooms.members["evt1"]; ok {
		t.Error("empty room entry not deleted")
	}
}

func TestLeaveNotifiesRemaining(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(alice, "evt1")
	h.Join(bob, "evt1")
	recvFrame(t, alice)
	recvFrame(t, alice)
	recvFrame(t, bob)

	h.Leave(alice, "evt1")

	f := recvFrame(t, bob)
	if f.Event != EventUserLeft {
		t.Fatalf("bob got %s, want %s", f.Event, EventUserLeft)
	}
	var p userRoomPayload
	decodeData(t, f, &p)
	if p.UserID != "alice" || p.EventID != "evt1" {
		t.Errorf("user-left = %+v", p)
	}
	expectNoFrame(t, alice) // leaver hears nothing
}

func TestMultiConnLeaveKeepsPresence(t *testing.T) {
	h := NewHub()
	bob := joined(h, "bob")
	h.Join(bob, "evt1")
	recvFrame(t, bob)

	c1 := testConn("alice-1", "alice")
	c2 := testConn("alice-2", "alice")
	h.Register(c1)
	h.Register(c2)
	h.Join(c1, "evt1")
	h.Join(c2, "evt1")
	recvFrame(t, c1)
	recvFrame(t, c2)
	recvFrame(t, bob)

	h.Leave(c1, "evt1")
	if !h.rooms.inRoom("evt1", "alice") {
		t.Fatal("alice dropped from presence while a connection remains")
	}
	expectNoFrame(t, bob)

	h.Leave(c2, "evt1")
	if h.rooms.inRoom("evt1", "alice") {
		t.Fatal("alice still present after last connection left")
	}
	if f := recvFrame(t, bob); f.Event != EventUserLeft {
		t.Errorf("bob got %s, want %s", f.Event, EventUserLeft)
	}
}

func TestLeaveRoomNeverJoined(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	h.Leave(alice, "evt9") // must not panic or emit
	expectNoFrame(t, alice)
}

func TestDisconnectCleansEveryRoom(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(bob, "evt1")
	h.Join(bob, "evt2")
	h.Join(alice, "evt1")
	h.Join(alice, "evt2")
	for i := 0; i < 2; i++ {
		recvFrame(t, alice)
	}
	for i := 0; i < 4; i++ {
		recvFrame(t, bob) // two snapshots + two user-present
	}

	h.OnDisconnect(alice)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		f := recvFrame(t, bob)
		if f.Event != EventUserLeft {
			t.Fatalf("bob got %s, want %s", f.Event, EventUserLeft)
		}
		var p userRoomPayload
		decodeData(t, f, &p)
		if p.UserID != "alice" {
			t.Errorf("user-left for %s, want alice", p.UserID)
		}
		seen[p.EventID] = true
	}
	if !seen["evt1"] || !seen["evt2"] {
		t.Errorf("user-left rooms = %v, want evt1 and evt2", seen)
	}
	if h.rooms.inRoom("evt1", "alice") || h.rooms.inRoom("evt2", "alice") {
		t.Error("ghost presence after disconnect")
	}
	if conns := h.reg.ListByUser("alice"); len(conns) != 0 {
		t.Errorf("registry still holds %d conns for alice", len(conns))
	}
}

func TestSendMessageReachesWholeRoom(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(alice, "evt1")
	h.Join(bob, "evt1")
	recvFrame(t, alice)
	recvFrame(t, alice)
	recvFrame(t, bob)

	h.SendMessage(alice, "hi")

	for _, c := range []*Conn{alice, bob} {
		f := recvFrame(t, c)
		if f.Event != EventNewMessage {
			t.Fatalf("%s got %s, want %s", c.UserID, f.Event, EventNewMessage)
		}
		var p chatPayload
		decodeData(t, f, &p)
		if p.UserID != "alice" || p.Message != "hi" {
			t.Errorf("new-message = %+v", p)
		}
		if p.Timestamp.IsZero() || time.Since(p.Timestamp) > time.Minute {
			t.Errorf("timestamp = %v", p.Timestamp)
		}
	}
}

func TestSendMessageWithoutRoomIsDropped(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(bob, "evt1")
	recvFrame(t, bob)

	h.SendMessage(alice, "into the void")

	expectNoFrame(t, alice)
	expectNoFrame(t, bob)
}

func TestTypingRelay(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(alice, "evt1")
	h.Join(bob, "evt1")
	recvFrame(t, alice)
	recvFrame(t, alice)
	recvFrame(t, bob)

	h.Typing(alice, EventTypingStart)

	f := recvFrame(t, bob)
	if f.Event != EventTypingStart {
		t.Fatalf("bob got %s, want %s", f.Event, EventTypingStart)
	}
	var p typingPayload
	decodeData(t, f, &p)
	if p.UserID != "alice" {
		t.Errorf("typing userId = %s", p.UserID)
	}
}

func TestEmitToUserOfflineIsNoop(t *testing.T) {
	h := NewHub()
	h.EmitToUser("nobody", EventInvitationReceived, map[string]string{"eventId": "evt1"})
}

func TestEmitToUserHitsAllConns(t *testing.T) {
	h := NewHub()
	c1 := testConn("alice-1", "alice")
	c2 := testConn("alice-2", "alice")
	h.Register(c1)
	h.Register(c2)

	h.EmitToUser("alice", EventInvitationReceived, map[string]string{"eventId": "evt1"})

	for _, c := range []*Conn{c1, c2} {
		if f := recvFrame(t, c); f.Event != EventInvitationReceived {
			t.Errorf("conn %s got %s", c.ID, f.Event)
		}
	}
}

func TestEmitToRoomExcludesUser(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	h.Join(alice, "evt1")
	h.Join(bob, "evt1")
	recvFrame(t, alice)
	recvFrame(t, alice)
	recvFrame(t, bob)

	h.EmitToRoom("evt1", EventContributionAdded, map[string]string{"eventId": "evt1"}, "alice")

	expectNoFrame(t, alice)
	if f := recvFrame(t, bob); f.Event != EventContributionAdded {
		t.Errorf("bob got %s", f.Event)
	}
}

func TestEmitToAllReachesEveryConnection(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")
	// bob never joined any room; global still reaches him
	h.Join(alice, "evt1")
	recvFrame(t, alice)

	h.EmitToAll(EventContributionAdded, map[string]string{"eventId": "evt7"})

	for _, c := range []*Conn{alice, bob} {
		if f := recvFrame(t, c); f.Event != EventContributionAdded {
			t.Errorf("%s got %s", c.UserID, f.Event)
		}
	}
}

func TestIndependentHubs(t *testing.T) {
	h1 := NewHub()
	h2 := NewHub()
	alice := joined(h1, "alice")
	h1.Join(alice, "evt1")
	recvFrame(t, alice)

	if h2.rooms.inRoom("evt1", "alice") {
		t.Error("hub state leaked across instances")
	}
}

func TestBroadcastOverStaleSnapshotSurvivesDisconnect(t *testing.T) {
	h := NewHub()
	alice := joined(h, "alice")
	bob := joined(h, "bob")

	// a broadcaster snapshots its targets, then alice disconnects before
	// the fanout runs. the stale entry must not take bob's frame down.
	targets := h.reg.ListAll()
	h.OnDisconnect(alice)

	h.fanout(targets, EventContributionAdded, map[string]string{"eventId": "evt1"})

	if f := recvFrame(t, bob); f.Event != EventContributionAdded {
		t.Fatalf("bob got %s", f.Event)
	}
}

func TestEnqueueAfterCloseIsNoop(t *testing.T) {
	c := testConn("c1", "alice")
	c.close()
	c.close() // idempotent

	c.enqueue([]byte(`{"event":"new-message"}`))

	expectNoFrame(t, c)
}
