package identity

import (
	"strings"
	"testing"
)

func TestResolveUser(t *testing.T) {
	actor := Resolve(42, true, "fp-abc", "1.2.3.4")
	if actor.Type != TypeUser {
		t.Fatalf("Type = %q, want %q", actor.Type, TypeUser)
	}
	if actor.UserID != 42 {
		t.Errorf("UserID = %d, want 42", actor.UserID)
	}
	if actor.Key() != "user:42" {
		t.Errorf("Key() = %q, want %q", actor.Key(), "user:42")
	}
}

func TestResolveGuestWithFingerprint(t *testing.T) {
	actor := Resolve(0, false, "fp-abc", "1.2.3.4")
	if actor.Type != TypeGuest {
		t.Fatalf("Type = %q, want %q", actor.Type, TypeGuest)
	}
	if actor.Fingerprint != "fp-abc" {
		t.Errorf("Fingerprint = %q, want %q", actor.Fingerprint, "fp-abc")
	}
	if actor.Key() != "guest:fp-abc" {
		t.Errorf("Key() = %q, want %q", actor.Key(), "guest:fp-abc")
	}
}

func TestResolveGuestFallback(t *testing.T) {
	a1 := Resolve(0, false, "", "1.2.3.4")
	a2 := Resolve(0, false, "", "1.2.3.4")
	a3 := Resolve(0, false, "", "5.6.7.8")

	if a1.Fingerprint == "" {
		t.Fatal("fallback fingerprint should not be empty")
	}
	if !strings.HasPrefix(a1.Fingerprint, "ip-") {
		t.Errorf("fallback fingerprint = %q, want ip- prefix", a1.Fingerprint)
	}
	// 同一 IP 派生稳定指纹，不同 IP 派生不同指纹
	if a1.Key() != a2.Key() {
		t.Errorf("same IP should derive same key: %q vs %q", a1.Key(), a2.Key())
	}
	if a1.Key() == a3.Key() {
		t.Error("different IPs should derive different keys")
	}
}
