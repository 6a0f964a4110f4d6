package ws

import "errors"

var (
	// ErrDuplicateConn means a connection id was registered twice. The
	// transport mints a fresh uuid per accept, so this is a programming
	// error, not something a client can trigger.
	ErrDuplicateConn = errors.New("connection already registered")
	// ErrUnknownConn means the connection id is not registered (never
	// was, or already closed).
	ErrUnknownConn = errors.New("unknown connection")
)

// Peer is the outbound side of a connection as the core sees it: a
// non-blocking enqueue. Queue reports false when the send buffer is
// full; the core drops the frame and moves on to the next recipient.
type Peer interface {
	Queue(b []byte) bool
}

// Membership is the last known room/user of a connection.
type Membership struct {
	RoomID string
	User   User
}

type regEntry struct {
	peer   Peer
	roomID string // "" until a join arrives, cleared again on leave
	user   User
}

// registry maps live connection ids to their membership facts and peer
// handles. Not safe for concurrent use on its own; the coordinator is
// the sole writer and holds the table lock around every call.
type registry struct {
	conns map[string]*regEntry
}

func newRegistry() *registry {
	return &registry{conns: make(map[string]*regEntry)}
}

func (r *registry) register(connID string, p Peer) error {
	if _, ok := r.conns[connID]; ok {
		return ErrDuplicateConn
	}
	r.conns[connID] = &regEntry{peer: p}
	return nil
}

func (r *registry) setMembership(connID, roomID string, u User) error {
	e, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConn
	}
	e.roomID = roomID
	e.user = u
	return nil
}

func (r *registry) get(connID string) (Membership, bool) {
	e, ok := r.conns[connID]
	if !ok {
		return Membership{}, false
	}
	return Membership{RoomID: e.roomID, User: e.user}, true
}

func (r *registry) peer(connID string) (Peer, bool) {
	e, ok := r.conns[connID]
	if !ok {
		return nil, false
	}
	return e.peer, true
}

// remove deletes the entry and returns its last membership, so the
// disconnect path can clean up room state without a second lookup.
func (r *registry) remove(connID string) (Membership, bool) {
	e, ok := r.conns[connID]
	if !ok {
		return Membership{}, false
	}
	delete(r.conns, connID)
	return Membership{RoomID: e.roomID, User: e.user}, true
}
