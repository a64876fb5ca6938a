package realtime

import "sort"

// roomTracker holds per-room presence. One entry per (room, user, connection),
// so a user leaves a room only when the last of their connections has left.
// Not safe for concurrent use; the hub serializes access.
type roomTracker struct {
	members map[string]map[string]map[string]struct{} // room -> user -> conn_id set
	byConn  map[string]map[string]struct{}            // conn_id -> room set
}

func newRoomTracker() *roomTracker {
	return &roomTracker{
		members: make(map[string]map[string]map[string]struct{}),
		byConn:  make(map[string]map[string]struct{}),
	}
}

// join records the connection in the room. Reports whether this was the
// user's zero->one transition for the room.
func (t *roomTracker) join(roomID, userID, connID string) (first bool) {
	room := t.members[roomID]
	if room == nil {
		room = make(map[string]map[string]struct{})
		t.members[roomID] = room
	}
	conns := room[userID]
	if conns == nil {
		conns = make(map[string]struct{})
		room[userID] = conns
		first = true
	}
	conns[connID] = struct{}{}

	rooms := t.byConn[connID]
	if rooms == nil {
		rooms = make(map[string]struct{})
		t.byConn[connID] = rooms
	}
	rooms[roomID] = struct{}{}
	return first
}

// leave removes the (room, connection) association. Reports whether the user
// has now fully left the room (one->zero transition). Leaving a room the
// connection never joined is a no-op.
func (t *roomTracker) leave(roomID, userID, connID string) (last bool) {
	room := t.members[roomID]
	if room == nil {
		return false
	}
	conns := room[userID]
	if conns == nil {
		return false
	}
	if _, ok := conns[connID]; !ok {
		return false
	}
	delete(conns, connID)
	if rooms := t.byConn[connID]; rooms != nil {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(t.byConn, connID)
		}
	}
	if len(conns) > 0 {
		return false
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(t.members, roomID)
	}
	return true
}

// presentUsers returns the room's member ids, sorted for stable payloads.
func (t *roomTracker) presentUsers(roomID string) []string {
	room := t.members[roomID]
	if len(room) == 0 {
		return nil
	}
	out := make([]string, 0, len(room))
	for userID := range room {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}

func (t *roomTracker) inRoom(roomID, userID string) bool {
	room := t.members[roomID]
	if room == nil {
		return false
	}
	return len(room[userID]) > 0
}

// roomsOf returns every room the connection is joined to.
func (t *roomTracker) roomsOf(connID string) []string {
	rooms := t.byConn[connID]
	if len(rooms) == 0 {
		return nil
	}
	out := make([]string, 0, len(rooms))
	for roomID := range rooms {
		out = append(out, roomID)
	}
	return out
}
