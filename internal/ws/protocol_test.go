package ws

import (
	"encoding/json"
	"testing"
)

func TestEventNamePeek(t *testing.T) {
	cases := map[string]string{
		`{"event":"join-room","data":{}}`:   EvtJoinRoom,
		`{"data":{},"event":"send-update"}`: EvtSendUpdate,
		`{"event":""}`:                      "",
		`{}`:                                "",
		`garbage`:                           "",
	}
	for raw, want := range cases {
		if got := eventName([]byte(raw)); got != want {
			t.Errorf("eventName(%s) = %q, want %q", raw, got, want)
		}
	}
}

func TestEncodeEventShape(t *testing.T) {
	b, err := encodeEvent(EvtUsersUpdate, []User{{ID: "u1", Name: "Alice"}})
	if err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != EvtUsersUpdate {
		t.Fatalf("event = %q", env.Event)
	}
	var users []User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Fatalf("roundtrip lost data: %v", users)
	}
}

func TestOpaquePayloadSurvivesRelayEncoding(t *testing.T) {
	content := json.RawMessage(`{"ops":[{"insert":"x"},{"retain":5}],"weird":[1,null,true]}`)
	b, err := encodeEvent(EvtReceiveUpdate, updateOut{Content: content, Type: "document"})
	if err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatal(err)
	}
	var out updateOut
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if string(out.Content) != string(content) {
		t.Fatalf("content changed in flight:\n in: %s\nout: %s", content, out.Content)
	}
}
