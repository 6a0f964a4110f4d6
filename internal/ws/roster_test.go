package ws

import "testing"

func TestRosterDistinctUsersJoinOrder(t *testing.T) {
	r := newRoster()
	r.join("room", "c1", User{ID: "u1", Name: "Alice"})
	r.join("room", "c2", User{ID: "u2", Name: "Bob"})
	r.join("room", "c3", User{ID: "u1", Name: "Alice"}) // second tab

	users := r.distinctUsers("room")
	if len(users) != 2 {
		t.Fatalf("want 2 distinct users, got %d", len(users))
	}
	if users[0].ID != "u1" || users[1].ID != "u2" {
		t.Fatalf("want first-join order [u1 u2], got %v", users)
	}
}

func TestRosterRejoinReplacesDescriptor(t *testing.T) {
	r := newRoster()
	r.join("room", "c1", User{ID: "u1", Name: "Alice"})
	r.join("room", "c1", User{ID: "u1", Name: "Alice B", Avatar: "new.png"})

	users := r.distinctUsers("room")
	if len(users) != 1 {
		t.Fatalf("want 1 user, got %v", users)
	}
	if users[0].Name != "Alice B" || users[0].Avatar != "new.png" {
		t.Fatalf("descriptor not replaced: %+v", users[0])
	}
}

func TestRosterRejoinWithDifferentUserID(t *testing.T) {
	r := newRoster()
	r.join("room", "c1", User{ID: "u1"})
	r.join("room", "c1", User{ID: "u2"})

	users := r.distinctUsers("room")
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("old identity must not linger, got %v", users)
	}
}

func TestRosterLeaveAbsentIsNoop(t *testing.T) {
	r := newRoster()
	r.leave("nowhere", "c1") // room never existed
	r.join("room", "c1", User{ID: "u1"})
	r.leave("room", "c2") // conn never joined
	if len(r.distinctUsers("room")) != 1 {
		t.Fatal("unrelated leave disturbed membership")
	}
	r.leave("room", "c1")
	r.leave("room", "c1") // double leave
	if !r.isEmpty("room") {
		t.Fatal("room should be empty")
	}
}

func TestRosterEvictsEmptyRoom(t *testing.T) {
	r := newRoster()
	r.join("room", "c1", User{ID: "u1"})
	if r.roomCount() != 1 {
		t.Fatalf("want 1 room, got %d", r.roomCount())
	}
	r.leave("room", "c1")
	if r.roomCount() != 0 {
		t.Fatalf("empty room not evicted, %d entries remain", r.roomCount())
	}
	// A fresh join restarts the order from scratch.
	r.join("room", "c9", User{ID: "u9"})
	users := r.distinctUsers("room")
	if len(users) != 1 || users[0].ID != "u9" {
		t.Fatalf("recreated room carries stale state: %v", users)
	}
}

func TestRosterUserStaysWhileAnyConnRemains(t *testing.T) {
	r := newRoster()
	r.join("room", "c1", User{ID: "u1"})
	r.join("room", "c2", User{ID: "u1"})
	r.leave("room", "c1")
	users := r.distinctUsers("room")
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("u1 still has c2 live, got %v", users)
	}
	r.leave("room", "c2")
	if !r.isEmpty("room") {
		t.Fatal("room should be empty after last connection left")
	}
}
