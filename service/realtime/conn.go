package realtime

import (
	"sync"
	"time"

	"github.com/JacobHeater/upsign/logger"

	"github.com/gorilla/websocket"
)

const (
	sendQueueSize  = 64
	writeWait      = 10 * time.Second
	pingPeriod     = 50 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 8 << 10
)

// Conn is one live client session. ID and UserID are set at handshake and
// never change; currentRoom is owned by the hub and guarded by its mutex.
type Conn struct {
	ID     string
	UserID string

	currentRoom string

	Send chan []byte

	// done is closed on teardown. Send itself is never closed: a broadcast
	// may still hold this conn in a snapshotted target list, and sending on
	// a closed channel would panic the whole fanout.
	done chan struct{}

	ws        *websocket.Conn
	closeOnce sync.Once
}

// NewConn builds a session around an upgraded websocket. A nil ws is
// allowed; frames then queue in Send unread until the conn is dropped.
func NewConn(id, userID string, ws *websocket.Conn) *Conn {
	return &Conn{
		ID:     id,
		UserID: userID,
		Send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
		ws:     ws,
	}
}

// enqueue hands a frame to the writer without blocking. A slow or closed
// client just loses the frame; delivery here is best-effort.
func (c *Conn) enqueue(payload []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.Send <- payload:
	default:
		logger.Warnf("[realtime] send queue full, drop frame conn=%s user=%s", c.ID, c.UserID)
	}
}

func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the send queue onto the websocket and keeps the
// connection alive with pings. Runs in its own goroutine per connection.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case payload := <-c.Send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
