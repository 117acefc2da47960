package chat

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"rawkart/internal/monitor"
	"rawkart/pkg/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Inbound wire events
const (
	eventJoinRoom         = "join_room"
	eventSendMessage      = "send_message"
	eventJoinNotification = "join_notification_room"
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outboundFrame struct {
	Event string `json:"event"`
	Data  Event  `json:"data"`
}

type joinRoomPayload struct {
	RoomID string `json:"room_id"`
	Role   Role   `json:"role"`
}

type sendMessagePayload struct {
	RoomID string `json:"room_id"`
	Body   string `json:"body"`
}

// WSSession implements Session over one gorilla/websocket connection.
// A lost connection is an implicit leave; clients re-issue joins and
// notification registrations on reconnect.
type WSSession struct {
	id       string
	userID   uint64
	userName string
	role     Role

	conn  *websocket.Conn
	coord *Coordinator

	send      chan Event
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewWSSession creates a websocket session for an authenticated user
func NewWSSession(conn *websocket.Conn, coord *Coordinator, userID uint64, userName string, role Role, sendBuffer int) *WSSession {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &WSSession{
		id:       uuid.NewString(),
		userID:   userID,
		userName: userName,
		role:     role,
		conn:     conn,
		coord:    coord,
		send:     make(chan Event, sendBuffer),
	}
}

// ID returns the session identifier
func (s *WSSession) ID() string { return s.id }

// Deliver enqueues an event without blocking
func (s *WSSession) Deliver(ev Event) bool {
	if s.closed.Load() {
		return false
	}
	select {
	case s.send <- ev:
		return true
	default:
		return false
	}
}

// Close shuts down the underlying connection. The pumps exit on their own
// once the connection errors out.
func (s *WSSession) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.conn.Close()
	})
}

// Run starts the session's read and write pumps
func (s *WSSession) Run() {
	monitor.ChatSessionsConnected.Inc()
	go s.writePump()
	go s.readPump()
}

func (s *WSSession) readPump() {
	defer func() {
		s.coord.Disconnect(s)
		s.Close()
		monitor.ChatSessionsConnected.Dec()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithFields(map[string]interface{}{
					"session_id": s.id,
					"error":      err.Error(),
				}).Warn("Websocket read failed")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.WithFields(map[string]interface{}{
				"session_id": s.id,
				"error":      err.Error(),
			}).Debug("Dropping malformed frame")
			continue
		}

		s.dispatch(frame)
	}
}

// dispatch routes one inbound frame. Identity always comes from the
// authenticated session, not from the payload.
func (s *WSSession) dispatch(frame inboundFrame) {
	ctx := context.Background()

	switch frame.Event {
	case eventJoinRoom:
		var p joinRoomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.RoomID == "" {
			return
		}
		s.coord.Join(ctx, s, p.RoomID, s.role)

	case eventSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.RoomID == "" {
			return
		}
		if err := s.coord.Send(ctx, p.RoomID, s.userName, s.role, p.Body); err != nil {
			log.WithFields(map[string]interface{}{
				"session_id": s.id,
				"room_id":    p.RoomID,
				"error":      err.Error(),
			}).Debug("Rejected message")
		}

	case eventJoinNotification:
		s.coord.Register(s, s.role, s.userID)

	default:
		log.WithFields(map[string]interface{}{
			"session_id": s.id,
			"event":      frame.Event,
		}).Debug("Unknown inbound event")
	}
}

func (s *WSSession) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case ev := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(outboundFrame{Event: ev.Name(), Data: ev}); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
