package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Abhinavp16/TogetherHub/pkg/auth"
)

// Hub is the transport edge of the realtime layer: it accepts /ws
// connections, feeds their frames to the Coordinator, and bridges
// relayed traffic across instances via the redis bus.
type Hub struct {
	log  *slog.Logger
	bus  *RedisBus
	jwt  *auth.JWT
	co   *Coordinator
	self string // instance id for bus origin stamping

	pubQ chan BusMessage
}

// NewHub sets up the hub with redis bus + JWT verifier + logger
func NewHub(logger *slog.Logger, bus *RedisBus, j *auth.JWT) *Hub {
	h := &Hub{
		log:  logger,
		bus:  bus,
		jwt:  j,
		co:   NewCoordinator(logger),
		self: uuid.NewString(),
		pubQ: make(chan BusMessage, 512),
	}
	// The coordinator calls this under its table lock; enqueue only,
	// the redis write happens on the Run goroutine.
	h.co.SetPublisher(func(roomID string, frame []byte) {
		select {
		case h.pubQ <- BusMessage{RoomID: roomID, Origin: h.self, Frame: frame}:
		default:
			logger.Warn("ws.bus.backlog", "room", roomID)
		}
	})
	return h
}

// Coordinator exposes the room state owner, mainly for tests and the
// REST layer's presence queries.
func (h *Hub) Coordinator() *Coordinator { return h.co }

// Run pumps frames between the coordinator and the redis bus until ctx
// is cancelled.
func (h *Hub) Run(ctx context.Context) {
	go h.bus.Subscribe(ctx, func(msg BusMessage) {
		if msg.Origin == h.self {
			return // our own publication, already delivered locally
		}
		h.co.BroadcastLocal(msg.RoomID, msg.Frame)
	})
	for {
		select {
		case m := <-h.pubQ:
			if err := h.bus.Publish(ctx, m); err != nil {
				h.log.Warn("ws.bus.publish", "room", m.RoomID, "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// ServeWS handles a new /ws connection. The JWT travels as a query
// param because browsers cannot set headers on websocket handshakes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tok := r.URL.Query().Get("token")
	if tok == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}
	uid, err := h.jwt.Verify(tok)
	if err != nil {
		http.Error(w, "bad token", http.StatusUnauthorized)
		return
	}

	sock, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(sock)
	if err := h.co.Register(c.ID(), c); err != nil {
		_ = c.Close()
		return
	}
	h.log.Debug("ws.connected", "conn", c.ID(), "user", uid)

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound reader: one frame at a time, in arrival order, so relayed
	// updates stay FIFO per sender.
	for {
		raw, ok := c.Read(ctx)
		if !ok {
			break
		}
		h.dispatch(c.ID(), uid, raw)
	}

	h.co.Disconnect(c.ID())
	_ = c.Close()
	h.log.Debug("ws.closed", "conn", c.ID(), "user", uid)
}

// dispatch routes one inbound frame. Malformed frames are logged and
// dropped; nothing here is surfaced to the client as an error.
func (h *Hub) dispatch(connID, uid string, raw []byte) {
	switch ev := eventName(raw); ev {
	case EvtJoinRoom:
		var env Envelope
		var p joinPayload
		if err := json.Unmarshal(raw, &env); err != nil {
			h.log.Debug("ws.frame.bad", "conn", connID, "err", err)
			return
		}
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomID == "" {
			h.log.Debug("ws.join.bad_payload", "conn", connID)
			return
		}
		// The descriptor is client-supplied; its id must match the
		// authenticated session. Override rather than reject, the rest
		// of the descriptor (name, avatar) stays as given.
		if p.User.ID != uid {
			h.log.Warn("ws.join.identity_mismatch", "conn", connID, "claimed", p.User.ID, "token", uid)
			p.User.ID = uid
		}
		_ = h.co.Join(connID, p.RoomID, p.User)

	case EvtSendUpdate:
		var env Envelope
		var p updatePayload
		if err := json.Unmarshal(raw, &env); err != nil {
			return
		}
		if err := json.Unmarshal(env.Data, &p); err != nil {
			h.log.Debug("ws.update.bad_payload", "conn", connID)
			return
		}
		// The registry's room is authoritative; the payload's roomId is
		// accepted on the wire but never trusted for routing.
		h.co.Relay(connID, EvtReceiveUpdate, updateOut{Content: p.Content, Type: p.Type})

	case EvtCursorMove:
		var env Envelope
		var p cursorPayload
		if err := json.Unmarshal(raw, &env); err != nil {
			return
		}
		if err := json.Unmarshal(env.Data, &p); err != nil {
			h.log.Debug("ws.cursor.bad_payload", "conn", connID)
			return
		}
		h.co.Relay(connID, EvtCursorReceive, cursorOut{UserID: p.UserID, UserName: p.UserName, Cursor: p.Cursor})

	case EvtLeaveRoom:
		h.co.Leave(connID)

	default:
		h.log.Debug("ws.frame.unknown", "conn", connID, "event", ev)
	}
}
