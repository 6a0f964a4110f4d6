package auth

import (
	"context"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	j := New("secret")
	tok, err := j.Sign("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	uid, err := j.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "user-1" {
		t.Fatalf("uid = %q", uid)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, _ := New("secret-a").Sign("user-1", time.Hour)
	if _, err := New("secret-b").Verify(tok); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tok, _ := New("secret").Sign("user-1", -time.Minute)
	if _, err := New("secret").Verify(tok); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestSignEmptyUID(t *testing.T) {
	if _, err := New("secret").Sign("", time.Hour); err == nil {
		t.Fatal("empty uid must be rejected")
	}
}

func TestContextUserID(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != "anon" {
		t.Fatalf("default uid = %q, want anon", got)
	}
	ctx = WithUser(ctx, "u7")
	if got := UserID(ctx); got != "u7" {
		t.Fatalf("uid = %q", got)
	}
}
