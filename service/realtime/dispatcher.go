package realtime

import (
	"encoding/json"
	"fmt"
)

type inboundHandler func(h *Hub, c *Conn, f *Frame) error

// Dispatcher routes inbound frames to their handlers by event name.
type Dispatcher struct {
	handlers map[string]inboundHandler
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]inboundHandler)}
	d.register(EventJoin, handleJoin)
	d.register(EventLeave, handleLeave)
	d.register(EventSendMessage, handleSendMessage)
	d.register(EventTypingStart, handleTyping)
	d.register(EventTypingStop, handleTyping)
	return d
}

func (d *Dispatcher) register(event string, fn inboundHandler) {
	d.handlers[event] = fn
}

func (d *Dispatcher) Dispatch(h *Hub, c *Conn, f *Frame) error {
	fn, ok := d.handlers[f.Event]
	if !ok {
		return fmt.Errorf("no handler for event=%s", f.Event)
	}
	return fn(h, c, f)
}

func handleJoin(h *Hub, c *Conn, f *Frame) error {
	var p joinPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return err
	}
	h.Join(c, p.EventID)
	return nil
}

func handleLeave(h *Hub, c *Conn, f *Frame) error {
	var p joinPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return err
	}
	h.Leave(c, p.EventID)
	return nil
}

func handleSendMessage(h *Hub, c *Conn, f *Frame) error {
	var p messagePayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return err
	}
	h.SendMessage(c, p.Message)
	return nil
}

// handleTyping relays typing-start/typing-stop as-is; which of the two it
// was rides on the frame's event name.
func handleTyping(h *Hub, c *Conn, f *Frame) error {
	h.Typing(c, f.Event)
	return nil
}
