package ws

// roomEntry tracks every connection in one room plus the first-join
// order of distinct user ids, so presence snapshots come out in the
// order users arrived rather than map order.
type roomEntry struct {
	conns map[string]User // connID -> descriptor
	order []string        // user ids, first join first
}

func (e *roomEntry) hasUser(userID string) bool {
	for _, u := range e.conns {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func (e *roomEntry) dropFromOrder(userID string) {
	for i, id := range e.order {
		if id == userID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			return
		}
	}
}

// roster is the room membership table: roomID -> set of connections with
// their user descriptors. Like the registry it relies on the
// coordinator's lock; entries are evicted as soon as they empty so dead
// rooms never accumulate.
type roster struct {
	rooms map[string]*roomEntry
}

func newRoster() *roster {
	return &roster{rooms: make(map[string]*roomEntry)}
}

// join adds connID to roomID. Calling it again for the same connection
// replaces the descriptor; state stays consistent even if the user id
// changed between the two calls.
func (t *roster) join(roomID, connID string, u User) {
	e := t.rooms[roomID]
	if e == nil {
		e = &roomEntry{conns: make(map[string]User)}
		t.rooms[roomID] = e
	}
	if prev, ok := e.conns[connID]; ok && prev.ID != u.ID {
		delete(e.conns, connID)
		if !e.hasUser(prev.ID) {
			e.dropFromOrder(prev.ID)
		}
	}
	if !e.hasUser(u.ID) {
		e.order = append(e.order, u.ID)
	}
	e.conns[connID] = u
}

// leave removes connID from roomID. Absent connections and absent rooms
// are fine: disconnect races an explicit leave and the second removal
// must be harmless.
func (t *roster) leave(roomID, connID string) {
	e := t.rooms[roomID]
	if e == nil {
		return
	}
	u, ok := e.conns[connID]
	if !ok {
		return
	}
	delete(e.conns, connID)
	if !e.hasUser(u.ID) {
		e.dropFromOrder(u.ID)
	}
	if len(e.conns) == 0 {
		delete(t.rooms, roomID)
	}
}

// distinctUsers returns one descriptor per user id currently in the
// room, ordered by first join. A user with several connections appears
// once, with the descriptor of any one of their live connections.
func (t *roster) distinctUsers(roomID string) []User {
	e := t.rooms[roomID]
	if e == nil {
		return nil
	}
	byID := make(map[string]User, len(e.conns))
	for _, u := range e.conns {
		byID[u.ID] = u
	}
	out := make([]User, 0, len(e.order))
	for _, id := range e.order {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// conns returns the connection ids currently in the room.
func (t *roster) conns(roomID string) []string {
	e := t.rooms[roomID]
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.conns))
	for id := range e.conns {
		out = append(out, id)
	}
	return out
}

func (t *roster) isEmpty(roomID string) bool {
	e := t.rooms[roomID]
	return e == nil || len(e.conns) == 0
}

func (t *roster) roomCount() int { return len(t.rooms) }
