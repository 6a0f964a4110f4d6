package ws

import "testing"

func TestRegistryLifecycle(t *testing.T) {
	r := newRegistry()
	p := &fakePeer{}

	if err := r.register("c1", p); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register("c1", p); err != ErrDuplicateConn {
		t.Fatalf("want ErrDuplicateConn, got %v", err)
	}

	m, ok := r.get("c1")
	if !ok || m.RoomID != "" {
		t.Fatalf("fresh connection should be unjoined, got %+v ok=%v", m, ok)
	}

	if err := r.setMembership("c1", "r1", User{ID: "u1"}); err != nil {
		t.Fatalf("setMembership: %v", err)
	}
	m, _ = r.get("c1")
	if m.RoomID != "r1" || m.User.ID != "u1" {
		t.Fatalf("membership not recorded: %+v", m)
	}

	m, ok = r.remove("c1")
	if !ok || m.RoomID != "r1" {
		t.Fatalf("remove should return last membership, got %+v ok=%v", m, ok)
	}
	if _, ok := r.get("c1"); ok {
		t.Fatal("entry survived remove")
	}
	if _, ok := r.remove("c1"); ok {
		t.Fatal("second remove should report absent")
	}
}

func TestRegistrySetMembershipUnknown(t *testing.T) {
	r := newRegistry()
	if err := r.setMembership("ghost", "r1", User{}); err != ErrUnknownConn {
		t.Fatalf("want ErrUnknownConn, got %v", err)
	}
}
