package ws

import (
	"encoding/json"
	"testing"

	"github.com/Abhinavp16/TogetherHub/pkg/auth"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	// No redis in unit tests; the bus is only touched by Run.
	return NewHub(testLogger(), nil, auth.New("test-secret"))
}

func frame(t *testing.T, event string, data any) []byte {
	t.Helper()
	b, err := encodeEvent(event, data)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDispatchJoinUpdateCursorLeave(t *testing.T) {
	h := newTestHub(t)
	p1 := register(t, h.Coordinator(), "c1")
	p2 := register(t, h.Coordinator(), "c2")

	h.dispatch("c1", "u1", frame(t, EvtJoinRoom, joinPayload{
		RoomID: "r1", User: User{ID: "u1", Name: "Alice"},
	}))
	h.dispatch("c2", "u2", frame(t, EvtJoinRoom, joinPayload{
		RoomID: "r1", User: User{ID: "u2", Name: "Bob"},
	}))

	users := p1.lastUsers(t)
	if len(users) != 2 || users[0].Name != "Alice" || users[1].Name != "Bob" {
		t.Fatalf("want [Alice Bob], got %v", users)
	}

	h.dispatch("c1", "u1", frame(t, EvtSendUpdate, updatePayload{
		RoomID: "r1", Content: json.RawMessage(`{"text":"hi"}`),
	}))
	if p1.count(EvtReceiveUpdate) != 0 || p2.count(EvtReceiveUpdate) != 1 {
		t.Fatal("send-update must reach peers only")
	}

	h.dispatch("c1", "u1", frame(t, EvtCursorMove, cursorPayload{
		RoomID: "r1", UserID: "u1", UserName: "Alice", Cursor: json.RawMessage(`{"x":3,"y":7}`),
	}))
	if p2.count(EvtCursorReceive) != 1 {
		t.Fatal("cursor-move must reach peers as cursor-receive-move")
	}
	// Cursor fields pass through verbatim.
	var env Envelope
	last := p2.frames[len(p2.frames)-1]
	if err := json.Unmarshal(last, &env); err != nil || env.Event != EvtCursorReceive {
		t.Fatalf("unexpected last frame: %s", last)
	}
	var cur cursorOut
	if err := json.Unmarshal(env.Data, &cur); err != nil {
		t.Fatal(err)
	}
	if cur.UserID != "u1" || cur.UserName != "Alice" || string(cur.Cursor) != `{"x":3,"y":7}` {
		t.Fatalf("cursor payload mangled: %+v", cur)
	}

	h.dispatch("c2", "u2", frame(t, EvtLeaveRoom, leavePayload{RoomID: "r1"}))
	users = p1.lastUsers(t)
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Fatalf("after Bob's leave-room want [Alice], got %v", users)
	}
}

func TestDispatchOverridesClaimedIdentity(t *testing.T) {
	h := newTestHub(t)
	p1 := register(t, h.Coordinator(), "c1")

	h.dispatch("c1", "real-user", frame(t, EvtJoinRoom, joinPayload{
		RoomID: "r1", User: User{ID: "someone-else", Name: "Mallory"},
	}))

	users := p1.lastUsers(t)
	if len(users) != 1 || users[0].ID != "real-user" {
		t.Fatalf("descriptor id must be bound to the token subject, got %v", users)
	}
	if users[0].Name != "Mallory" {
		t.Fatalf("non-identity fields should pass through, got %+v", users[0])
	}
}

func TestDispatchToleratesGarbage(t *testing.T) {
	h := newTestHub(t)
	register(t, h.Coordinator(), "c1")

	h.dispatch("c1", "u1", []byte(`not json at all`))
	h.dispatch("c1", "u1", []byte(`{"event":"join-room","data":42}`))
	h.dispatch("c1", "u1", []byte(`{"event":"join-room","data":{"user":{"id":"u1"}}}`)) // no roomId
	h.dispatch("c1", "u1", frame(t, "no-such-event", map[string]string{"a": "b"}))

	if m, _ := h.Coordinator().Membership("c1"); m.RoomID != "" {
		t.Fatalf("garbage frames must not join anything, got %+v", m)
	}
}
