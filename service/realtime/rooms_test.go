package realtime

import "testing"

func TestRoomTrackerTransitions(t *testing.T) {
	tr := newRoomTracker()

	if !tr.join("r1", "alice", "c1") {
		t.Fatal("first join must report the zero->one transition")
	}
	if tr.join("r1", "alice", "c2") {
		t.Fatal("second connection must not report a transition")
	}
	if tr.join("r1", "alice", "c2") {
		t.Fatal("re-join of same connection must not report a transition")
	}

	if tr.leave("r1", "alice", "c1") {
		t.Fatal("leave with a connection remaining must not report one->zero")
	}
	if !tr.leave("r1", "alice", "c2") {
		t.Fatal("last leave must report the one->zero transition")
	}
	if _, ok := tr.members["r1"]; ok {
		t.Error("empty room entry not deleted")
	}
}

func TestRoomTrackerLeaveUnknown(t *testing.T) {
	tr := newRoomTracker()
	if tr.leave("r1", "alice", "c1") {
		t.Error("leave of unknown room must be a no-op")
	}
	tr.join("r1", "alice", "c1")
	if tr.leave("r1", "bob", "c9") {
		t.Error("leave of non-member must be a no-op")
	}
}

func TestRoomTrackerRoomsOf(t *testing.T) {
	tr := newRoomTracker()
	tr.join("r1", "alice", "c1")
	tr.join("r2", "alice", "c1")
	tr.join("r3", "bob", "c2")

	rooms := tr.roomsOf("c1")
	if len(rooms) != 2 {
		t.Fatalf("roomsOf = %v, want 2 rooms", rooms)
	}
	tr.leave("r1", "alice", "c1")
	tr.leave("r2", "alice", "c1")
	if got := tr.roomsOf("c1"); got != nil {
		t.Errorf("conn index survives last room: %v", got)
	}
}

func TestPresentUsersSorted(t *testing.T) {
	tr := newRoomTracker()
	tr.join("r1", "zoe", "c1")
	tr.join("r1", "alice", "c2")
	tr.join("r1", "mia", "c3")

	users := tr.presentUsers("r1")
	want := []string{"alice", "mia", "zoe"}
	for i, u := range want {
		if users[i] != u {
			t.Fatalf("presentUsers = %v, want %v", users, want)
		}
	}
}
