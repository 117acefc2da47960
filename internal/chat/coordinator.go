package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"rawkart/internal/model"
	"rawkart/internal/monitor"
	"rawkart/pkg/log"
)

// Config coordinator configuration
type Config struct {
	// HistoryLimit number of persisted messages replayed to a joining session
	HistoryLimit int
	// RequireSupplierJoin legacy gate: announce the first supplier join so
	// clients unlock message composition. Later behavior allows both roles
	// to message immediately, so this defaults to off.
	RequireSupplierJoin bool
}

// Lifecycle is the surface the order store drives. Order mutations never
// touch membership state directly; they raise these signals and the
// coordinator interprets them.
type Lifecycle interface {
	// Close marks a room closed and broadcasts a closure notice
	Close(roomID string, reason ClosePayload)

	// Reopen clears the closed flag after a new request is created for the
	// same party pair
	Reopen(roomID string)

	// Notify delivers an event to every session registered under (role, userID)
	Notify(role Role, userID uint64, ev Event)
}

// room live state for one room identity. Transient: rebuilt from client
// re-joins after a restart, never persisted.
type room struct {
	mu            sync.Mutex
	id            string
	members       map[Session]struct{}
	closed        bool
	rolesSeen     map[Role]bool
	gateAnnounced bool
}

type notifyKey struct {
	role   Role
	userID uint64
}

// Coordinator owns room lifecycle and message delivery. All join/send/close
// operations for one room identity are serialized behind that room's lock;
// different rooms proceed concurrently.
type Coordinator struct {
	cfg        Config
	messageLog MessageLog

	mu     sync.RWMutex
	rooms  map[string]*room
	notify map[notifyKey]map[Session]struct{}
}

// NewCoordinator creates a room coordinator
func NewCoordinator(cfg Config, messageLog MessageLog) *Coordinator {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return &Coordinator{
		cfg:        cfg,
		messageLog: messageLog,
		rooms:      make(map[string]*room),
		notify:     make(map[notifyKey]map[Session]struct{}),
	}
}

// ErrEmptyBody rejected at the boundary before a message reaches the room
var ErrEmptyBody = errors.New("message body must not be empty")

// Join registers a session in a room and replays recent history to it.
// Re-joining is a no-op and never triggers a second replay. A join under a
// closed identity resumes the room.
func (c *Coordinator) Join(ctx context.Context, s Session, roomID string, role Role) {
	roomID = NormalizeRoomID(roomID)
	r := c.getOrCreateRoom(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[s]; ok {
		return
	}
	r.members[s] = struct{}{}
	r.closed = false

	firstOfRole := !r.rolesSeen[role]
	r.rolesSeen[role] = true

	// History fetch failure degrades to an empty replay; the join itself
	// always completes.
	history, err := c.messageLog.FetchRecent(ctx, roomID, c.cfg.HistoryLimit)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		}).Warn("History fetch failed, replaying empty history")
		history = nil
	}
	c.deliverLocked(r, s, PreviousMessages{RoomID: roomID, Messages: history})

	if c.cfg.RequireSupplierJoin && role == RoleSupplier && firstOfRole && !r.gateAnnounced {
		r.gateAnnounced = true
		notice := SystemNotice{
			RoomID: roomID,
			Text:   "Supplier has joined the chat. Messaging is now enabled.",
		}
		for member := range r.members {
			if member != s {
				c.deliverLocked(r, member, notice)
			}
		}
	}
}

// Send persists a message and broadcasts it to every current member of the
// room, including the sender, so all clients render from the authoritative
// broadcast. Persistence is attempted first; a failure is logged and
// swallowed, and the broadcast happens regardless.
func (c *Coordinator) Send(ctx context.Context, roomID, senderName string, role Role, body string) error {
	if body == "" {
		return ErrEmptyBody
	}

	roomID = NormalizeRoomID(roomID)
	r := c.getOrCreateRoom(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = false

	msg := &model.Message{
		RoomID:     roomID,
		SenderName: senderName,
		SenderRole: string(role),
		Body:       body,
		Timestamp:  time.Now(),
	}

	if err := c.messageLog.Append(ctx, msg); err != nil {
		monitor.ChatPersistFailuresTotal.Inc()
		log.WithFields(map[string]interface{}{
			"room_id": roomID,
			"sender":  senderName,
			"error":   err.Error(),
		}).Error("Message append failed, broadcasting anyway")
	}

	monitor.ChatMessagesTotal.WithLabelValues(string(role)).Inc()

	ev := MessageReceived{Message: *msg}
	for member := range r.members {
		c.deliverLocked(r, member, ev)
	}

	return nil
}

// Close marks a room closed and broadcasts a synthetic closure notice.
// Members are not evicted; they keep receiving traffic when the room
// reopens under the same identity.
func (c *Coordinator) Close(roomID string, reason ClosePayload) {
	roomID = NormalizeRoomID(roomID)
	r := c.getOrCreateRoom(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	monitor.ChatClosuresTotal.Inc()

	ev := ChatClosed{RoomID: roomID, Reason: reason}
	for member := range r.members {
		c.deliverLocked(r, member, ev)
	}

	log.WithFields(map[string]interface{}{
		"room_id":  roomID,
		"order_id": reason.OrderID,
	}).Info("Chat room closed")
}

// Reopen clears the closed flag for a room identity. Called when a new
// request is created for the same party pair; there is no explicit reopen
// event on the wire.
func (c *Coordinator) Reopen(roomID string) {
	roomID = NormalizeRoomID(roomID)
	r := c.getOrCreateRoom(roomID)

	r.mu.Lock()
	r.closed = false
	r.mu.Unlock()
}

// RoomClosed reports whether a room is currently marked closed. The UI layer
// checks this before allowing message composition; the coordinator itself
// still accepts sends on closed rooms.
func (c *Coordinator) RoomClosed(roomID string) bool {
	roomID = NormalizeRoomID(roomID)

	c.mu.RLock()
	r := c.rooms[roomID]
	c.mu.RUnlock()
	if r == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Register adds a session to the notification room for (role, userID).
// Idempotent; clients re-register after every reconnect.
func (c *Coordinator) Register(s Session, role Role, userID uint64) {
	key := notifyKey{role: role, userID: userID}

	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.notify[key]
	if !ok {
		set = make(map[Session]struct{})
		c.notify[key] = set
	}
	set[s] = struct{}{}
}

// Notify delivers an event to every session registered under (role, userID).
// No registered session is not an error; the event is silently dropped.
func (c *Coordinator) Notify(role Role, userID uint64, ev Event) {
	key := notifyKey{role: role, userID: userID}

	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.notify[key]
	for s := range set {
		if !s.Deliver(ev) {
			delete(set, s)
			continue
		}
		monitor.NotificationsTotal.WithLabelValues(string(role)).Inc()
	}
}

// Disconnect removes a session from every room and notification set it
// belongs to. A session that never joined anything is a silent no-op.
func (c *Coordinator) Disconnect(s Session) {
	c.mu.RLock()
	rooms := make([]*room, 0, len(c.rooms))
	for _, r := range c.rooms {
		rooms = append(rooms, r)
	}
	c.mu.RUnlock()

	for _, r := range rooms {
		r.mu.Lock()
		delete(r.members, s)
		r.mu.Unlock()
	}

	c.mu.Lock()
	for _, set := range c.notify {
		delete(set, s)
	}
	c.mu.Unlock()
}

// MemberCount returns the number of sessions currently joined to a room
func (c *Coordinator) MemberCount(roomID string) int {
	roomID = NormalizeRoomID(roomID)

	c.mu.RLock()
	r := c.rooms[roomID]
	c.mu.RUnlock()
	if r == nil {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (c *Coordinator) getOrCreateRoom(roomID string) *room {
	c.mu.RLock()
	r, ok := c.rooms[roomID]
	c.mu.RUnlock()
	if ok {
		return r
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok = c.rooms[roomID]; ok {
		return r
	}

	r = &room{
		id:        roomID,
		members:   make(map[Session]struct{}),
		rolesSeen: make(map[Role]bool),
	}
	c.rooms[roomID] = r
	monitor.ChatRoomsTracked.Inc()
	return r
}

// deliverLocked delivers one event to one member; the room lock must be
// held. A session that cannot accept the event is dropped from the room so
// a dead connection never blocks the broadcast loop.
func (c *Coordinator) deliverLocked(r *room, s Session, ev Event) {
	if !s.Deliver(ev) {
		delete(r.members, s)
		log.WithFields(map[string]interface{}{
			"room_id":    r.id,
			"session_id": s.ID(),
			"event":      ev.Name(),
		}).Warn("Dropping unresponsive session from room")
		return
	}
	monitor.ChatBroadcastDeliveriesTotal.Inc()
}
