package realtime

import (
	"sync"
	"time"

	"github.com/JacobHeater/upsign/logger"
)

// Hub is the single coordination point for the event-room subsystem: it owns
// the connection registry and the room presence state, and it performs all
// fan-out. One hub per process; construct more in tests as needed.
type Hub struct {
	mu    sync.Mutex // guards rooms and Conn.currentRoom
	reg   *Registry
	rooms *roomTracker
}

func NewHub() *Hub {
	return &Hub{
		reg:   NewRegistry(),
		rooms: newRoomTracker(),
	}
}

func (h *Hub) Registry() *Registry { return h.reg }

type presencePayload struct {
	EventID      string   `json:"eventId"`
	PresentUsers []string `json:"presentUsers"`
}

type userRoomPayload struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
}

type chatPayload struct {
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type typingPayload struct {
	UserID string `json:"userId"`
}

// Register makes an authenticated connection addressable.
func (h *Hub) Register(c *Conn) {
	h.reg.Register(c)
}

// Join adds the connection to an event room. The joiner always gets a full
// presence snapshot taken after its own insertion; the rest of the room gets
// a user-present delta only on the user's zero->one connection transition.
func (h *Hub) Join(c *Conn, roomID string) {
	if roomID == "" {
		return
	}
	h.mu.Lock()
	first := h.rooms.join(roomID, c.UserID, c.ID)
	c.currentRoom = roomID
	snapshot := h.rooms.presentUsers(roomID)
	var others []*Conn
	if first {
		others = h.roomConnsLocked(roomID, c.UserID)
	}
	h.mu.Unlock()

	h.sendTo(c, EventPresenceUpdate, presencePayload{EventID: roomID, PresentUsers: snapshot})
	if first {
		h.fanout(others, EventUserPresent, userRoomPayload{UserID: c.UserID, EventID: roomID})
	}
}

// Leave removes the (room, connection) association. The room is told the
// user left only once their last connection is gone. Leaving a room the
// connection never joined is a no-op.
func (h *Hub) Leave(c *Conn, roomID string) {
	h.mu.Lock()
	last := h.rooms.leave(roomID, c.UserID, c.ID)
	if c.currentRoom == roomID {
		c.currentRoom = ""
	}
	var remaining []*Conn
	if last {
		remaining = h.roomConnsLocked(roomID, "")
	}
	h.mu.Unlock()

	if last {
		h.fanout(remaining, EventUserLeft, userRoomPayload{UserID: c.UserID, EventID: roomID})
	}
}

// OnDisconnect runs the full cleanup for a dead transport: the connection
// leaves every room it had joined, then disappears from the registry. This
// is what keeps closed tabs from leaving ghost presence behind.
func (h *Hub) OnDisconnect(c *Conn) {
	type leftRoom struct {
		roomID    string
		remaining []*Conn
	}
	h.mu.Lock()
	var left []leftRoom
	for _, roomID := range h.rooms.roomsOf(c.ID) {
		if h.rooms.leave(roomID, c.UserID, c.ID) {
			left = append(left, leftRoom{roomID: roomID, remaining: h.roomConnsLocked(roomID, "")})
		}
	}
	c.currentRoom = ""
	h.mu.Unlock()

	h.reg.Unregister(c)
	for _, lr := range left {
		h.fanout(lr.remaining, EventUserLeft, userRoomPayload{UserID: c.UserID, EventID: lr.roomID})
	}
	c.close()
}

// SendMessage relays chat to the sender's current room, sender included.
// A connection that never joined a room gets its message dropped.
func (h *Hub) SendMessage(c *Conn, message string) {
	h.mu.Lock()
	roomID := c.currentRoom
	h.mu.Unlock()
	if roomID == "" {
		logger.Infof("[realtime] send-message without room, drop conn=%s user=%s", c.ID, c.UserID)
		return
	}
	h.EmitToRoom(roomID, EventNewMessage, chatPayload{
		UserID:    c.UserID,
		Message:   message,
		Timestamp: time.Now(),
	}, "")
}

// Typing relays typing-start/typing-stop to the sender's current room.
func (h *Hub) Typing(c *Conn, event string) {
	h.mu.Lock()
	roomID := c.currentRoom
	h.mu.Unlock()
	if roomID == "" {
		logger.Debugf("[realtime] %s without room, drop conn=%s user=%s", event, c.ID, c.UserID)
		return
	}
	h.EmitToRoom(roomID, event, typingPayload{UserID: c.UserID}, "")
}

// EmitToUser delivers to every live connection of one user. A user with no
// connections is simply offline; nothing happens.
func (h *Hub) EmitToUser(userID, event string, data any) {
	h.fanout(h.reg.ListByUser(userID), event, data)
}

// EmitToRoom delivers to every connection joined to the room, optionally
// skipping all connections of one user.
func (h *Hub) EmitToRoom(roomID, event string, data any, excludeUserID string) {
	h.mu.Lock()
	conns := h.roomConnsLocked(roomID, excludeUserID)
	h.mu.Unlock()
	h.fanout(conns, event, data)
}

// EmitToAll delivers to every connection of every user. Used for the
// low-frequency domain notifications whose payloads carry the eventId the
// clients filter on.
func (h *Hub) EmitToAll(event string, data any) {
	h.fanout(h.reg.ListAll(), event, data)
}

// roomConnsLocked resolves the room's connection ids against the registry.
// Caller holds h.mu.
func (h *Hub) roomConnsLocked(roomID, excludeUserID string) []*Conn {
	room := h.rooms.members[roomID]
	if len(room) == 0 {
		return nil
	}
	out := make([]*Conn, 0, len(room))
	for userID, connIDs := range room {
		if excludeUserID != "" && userID == excludeUserID {
			continue
		}
		for connID := range connIDs {
			if c := h.reg.Get(connID); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (h *Hub) sendTo(c *Conn, event string, data any) {
	payload, err := EncodeFrame(event, data)
	if err != nil {
		logger.Errorf("[realtime] encode %s: %v", event, err)
		return
	}
	c.enqueue(payload)
}

// fanout delivers one encoded frame to each connection. A dead or slow
// connection never blocks its siblings.
func (h *Hub) fanout(conns []*Conn, event string, data any) {
	if len(conns) == 0 {
		return
	}
	payload, err := EncodeFrame(event, data)
	if err != nil {
		logger.Errorf("[realtime] encode %s: %v", event, err)
		return
	}
	for _, c := range conns {
		c.enqueue(payload)
	}
}
