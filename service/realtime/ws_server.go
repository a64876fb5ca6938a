package realtime

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/JacobHeater/upsign/logger"
	"github.com/JacobHeater/upsign/tools/errs"
	"github.com/JacobHeater/upsign/tools/ids"
	security "github.com/JacobHeater/upsign/tools/security"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSServer owns the websocket endpoint: it authenticates the handshake,
// registers the connection and runs the read loop.
type WSServer struct {
	hub        *Hub
	disp       *Dispatcher
	auth       security.Options
	cookieName string
}

func NewWSServer(hub *Hub, auth security.Options, cookieName string) *WSServer {
	return &WSServer{
		hub:        hub,
		disp:       NewDispatcher(),
		auth:       auth,
		cookieName: cookieName,
	}
}

func (s *WSServer) Hub() *Hub { return s.hub }

// authenticate extracts the session token from the cookie, the token query
// param or an Authorization bearer header, and verifies it. The user id is
// the token subject.
func (s *WSServer) authenticate(r *http.Request) (string, error) {
	var token string
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		token = strings.TrimSpace(r.URL.Query().Get("token"))
	}
	if token == "" {
		if authz := strings.TrimSpace(r.Header.Get("Authorization")); authz != "" {
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[len("bearer "):])
			}
		}
	}
	if token == "" {
		return "", errs.ErrTokenMissing
	}
	claims, err := security.Verify(s.auth, token)
	if err != nil {
		return "", errs.ErrTokenInvalid.WrapMsg(err.Error())
	}
	userID := claims.UserID()
	if userID == "" {
		return "", errs.ErrTokenInvalid
	}
	return userID, nil
}

// HandleWS upgrades the request. An unauthenticated connection is refused
// before it is registered anywhere.
func (s *WSServer) HandleWS(c *gin.Context) {
	userID, err := s.authenticate(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenInvalid)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[WS] upgrade error: %v", err)
		return
	}

	conn := NewConn(ids.GenerateString(), userID, ws)
	s.hub.Register(conn)
	go conn.writePump()

	logger.Infof("[WS] connected conn=%s user=%s remote=%s", conn.ID, userID, ws.RemoteAddr())
	s.readLoop(conn, ws)
}

// readLoop reads frames until the transport dies, then runs disconnect
// cleanup so no room keeps ghost presence for this connection.
func (s *WSServer) readLoop(conn *Conn, ws *websocket.Conn) {
	defer s.hub.OnDisconnect(conn)

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[WS] peer closed conn=%s err=%v", conn.ID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[WS] read timeout conn=%s err=%v", conn.ID, rerr)
			} else {
				logger.Infof("[WS] read err conn=%s err=%v", conn.ID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Infof("[WS] bad frame conn=%s err=%v sample=%q", conn.ID, perr, sample)
			continue
		}

		if err := s.disp.Dispatch(s.hub, conn, frame); err != nil {
			logger.Infof("[WS] dispatch event=%s conn=%s err=%v", frame.Event, conn.ID, err)
		}
	}
}
