package ws

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Wire events. Inbound names match what the editor clients emit,
// outbound names match what they listen for.
const (
	EvtJoinRoom   = "join-room"
	EvtSendUpdate = "send-update"
	EvtCursorMove = "cursor-move"
	EvtLeaveRoom  = "leave-room"

	EvtUsersUpdate   = "users-update"
	EvtReceiveUpdate = "receive-update"
	EvtCursorReceive = "cursor-receive-move"
)

// Envelope is the frame every ws message travels in: an event name plus
// an event-specific body. Bodies the core only relays stay RawMessage.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// User is the caller-supplied identity attached to a connection at join
// time. The core does not interpret it beyond deduplicating by ID.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type joinPayload struct {
	RoomID string `json:"roomId"`
	Type   string `json:"type,omitempty"`
	User   User   `json:"user"`
}

type leavePayload struct {
	RoomID string `json:"roomId"`
}

// updatePayload carries an opaque editor update. Content is whatever the
// document/code/whiteboard editor produced; the core never inspects it.
type updatePayload struct {
	RoomID  string          `json:"roomId"`
	Content json.RawMessage `json:"content"`
	Type    string          `json:"type,omitempty"`
}

type updateOut struct {
	Content json.RawMessage `json:"content"`
	Type    string          `json:"type,omitempty"`
}

// cursorPayload carries a peer cursor position. Coordinates are opaque:
// each editor kind encodes them differently.
type cursorPayload struct {
	RoomID   string          `json:"roomId"`
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Cursor   json.RawMessage `json:"cursor"`
}

type cursorOut struct {
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Cursor   json.RawMessage `json:"cursor"`
}

// eventName peeks the event field without decoding the whole frame.
func eventName(raw []byte) string {
	return gjson.GetBytes(raw, "event").String()
}

func encodeEvent(event string, data any) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: body})
}
