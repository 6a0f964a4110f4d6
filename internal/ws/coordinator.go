package ws

import (
	"log/slog"
	"sync"

	"github.com/Abhinavp16/TogetherHub/pkg/metrics"
)

// Coordinator owns the connection registry and the room roster and is
// their only writer. Every connection walks UNJOINED -> JOINED ->
// CLOSED: Register puts it in the registry unjoined, Join/Leave move it
// between rooms (a connection is in at most one room), and Disconnect
// removes it for good. Closed ids are never reused; operations on them
// are treated as already complete.
//
// One RWMutex guards both tables, so a join/leave/disconnect (mutate
// tables, then broadcast presence) is never interleaved with another
// mutation, and relays always see settled membership. All outbound
// traffic is a non-blocking push onto the recipient's send buffer; a
// slow peer loses frames instead of stalling the room.
type Coordinator struct {
	log *slog.Logger

	mu    sync.RWMutex
	reg   *registry
	rooms *roster

	// publish, when set, mirrors relayed frames onto the cross-instance
	// bus. Called outside any send loop but under the table lock, so
	// implementations must not block.
	publish func(roomID string, frame []byte)
}

func NewCoordinator(log *slog.Logger) *Coordinator {
	return &Coordinator{
		log:   log,
		reg:   newRegistry(),
		rooms: newRoster(),
	}
}

// SetPublisher installs the cross-instance relay hook. Must be called
// before the coordinator starts taking traffic.
func (c *Coordinator) SetPublisher(fn func(roomID string, frame []byte)) {
	c.publish = fn
}

// Register adds a fresh, unjoined connection. A duplicate id means the
// transport handed out the same id twice; that connection's handling is
// abandoned but the process keeps running.
func (c *Coordinator) Register(connID string, p Peer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reg.register(connID, p); err != nil {
		c.log.Error("ws.register.duplicate", "conn", connID)
		return err
	}
	metrics.WSConnections.Inc()
	return nil
}

// Join moves the connection into roomID and announces the new presence
// list to everyone there. If the connection was already in a different
// room it runs the full leave sequence for that room first.
func (c *Coordinator) Join(connID, roomID string, u User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.reg.get(connID)
	if !ok {
		c.log.Error("ws.join.unknown_conn", "conn", connID)
		return ErrUnknownConn
	}
	if m.RoomID == roomID && m.User.ID == u.ID {
		// Repeat join to the same room: refresh the descriptor, no
		// leave cycle.
		c.rooms.join(roomID, connID, u)
		_ = c.reg.setMembership(connID, roomID, u)
		c.announceLocked(roomID)
		return nil
	}
	if m.RoomID != "" {
		c.leaveLocked(connID, m.RoomID)
	}

	c.rooms.join(roomID, connID, u)
	_ = c.reg.setMembership(connID, roomID, u)
	c.announceLocked(roomID)
	metrics.ActiveRooms.Set(float64(c.rooms.roomCount()))
	c.log.Debug("ws.join", "conn", connID, "room", roomID, "user", u.ID)
	return nil
}

// Leave takes the connection out of its current room, if any. Leaving
// twice, or leaving after a disconnect already cleaned up, is a no-op.
func (c *Coordinator) Leave(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.reg.get(connID)
	if !ok || m.RoomID == "" {
		return
	}
	c.leaveLocked(connID, m.RoomID)
	c.log.Debug("ws.leave", "conn", connID, "room", m.RoomID)
}

// Disconnect finalizes a connection after its transport closed. The
// room, if the connection held one, sees the same presence update an
// explicit leave would have produced. Safe to call more than once.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.reg.remove(connID)
	if !ok {
		return // already closed
	}
	metrics.WSConnections.Dec()
	if m.RoomID != "" {
		c.rooms.leave(m.RoomID, connID)
		c.announceLocked(m.RoomID)
		metrics.ActiveRooms.Set(float64(c.rooms.roomCount()))
	}
	c.log.Debug("ws.disconnect", "conn", connID, "room", m.RoomID)
}

// leaveLocked runs the leave sequence for a connection known to be in
// roomID: drop it from the roster, clear its registry membership, then
// announce to whoever is still there. The emptied room is evicted by
// the roster itself.
func (c *Coordinator) leaveLocked(connID, roomID string) {
	c.rooms.leave(roomID, connID)
	_ = c.reg.setMembership(connID, "", User{})
	c.announceLocked(roomID)
	metrics.ActiveRooms.Set(float64(c.rooms.roomCount()))
}

// announceLocked pushes the full, deduplicated presence list to every
// connection in the room. No diffing: clients always get the whole
// authoritative list. An empty room produces zero sends.
func (c *Coordinator) announceLocked(roomID string) {
	conns := c.rooms.conns(roomID)
	if len(conns) == 0 {
		return
	}
	users := c.rooms.distinctUsers(roomID)
	if users == nil {
		users = []User{}
	}
	frame, err := encodeEvent(EvtUsersUpdate, users)
	if err != nil {
		c.log.Error("ws.announce.encode", "room", roomID, "err", err)
		return
	}
	for _, id := range conns {
		c.queueTo(id, frame, roomID)
	}
	metrics.PresenceBroadcasts.Inc()
}

// Relay forwards an already-encoded outbound frame to every connection
// in the sender's room except the sender itself. A sender with no room
// yet is a client racing its own join; the frame is dropped quietly.
func (c *Coordinator) Relay(senderID string, event string, data any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.reg.get(senderID)
	if !ok || m.RoomID == "" {
		c.log.Debug("ws.relay.no_room", "conn", senderID, "event", event)
		return
	}
	frame, err := encodeEvent(event, data)
	if err != nil {
		c.log.Error("ws.relay.encode", "conn", senderID, "event", event, "err", err)
		return
	}
	for _, id := range c.rooms.conns(m.RoomID) {
		if id == senderID {
			continue
		}
		c.queueTo(id, frame, m.RoomID)
	}
	if c.publish != nil {
		c.publish(m.RoomID, frame)
	}
	metrics.UpdatesRelayed.Inc()
}

// BroadcastLocal delivers a frame that originated on another instance
// to every local connection in the room. No sender exclusion: the
// sender lives elsewhere.
func (c *Coordinator) BroadcastLocal(roomID string, frame []byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.rooms.conns(roomID) {
		c.queueTo(id, frame, roomID)
	}
}

// DistinctUsers reports the current presence list of a room.
func (c *Coordinator) DistinctUsers(roomID string) []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms.distinctUsers(roomID)
}

// RoomEmpty reports whether no connection currently holds the room.
func (c *Coordinator) RoomEmpty(roomID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms.isEmpty(roomID)
}

// Membership reports the room and user of a live connection.
func (c *Coordinator) Membership(connID string) (Membership, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reg.get(connID)
}

// queueTo pushes a frame to one recipient, isolating its failure from
// the rest of the fan-out.
func (c *Coordinator) queueTo(connID string, frame []byte, roomID string) {
	p, ok := c.reg.peer(connID)
	if !ok {
		return
	}
	if !p.Queue(frame) {
		c.log.Warn("ws.send.dropped", "conn", connID, "room", roomID)
	}
}
