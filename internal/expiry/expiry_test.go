package expiry

import (
	"testing"
	"time"
)

func TestIsLiveBoundary(t *testing.T) {
	created := int64(1_700_000_000_000)
	ttl := TTL.Milliseconds()

	if !IsLive(created, created) {
		t.Fatalf("room should be live at creation time")
	}
	if !IsLive(created, created+ttl) {
		t.Fatalf("room should still be live exactly at the TTL boundary")
	}
	if IsLive(created, created+ttl+1) {
		t.Fatalf("room should be expired one millisecond past the boundary")
	}
}

func TestRemaining(t *testing.T) {
	created := int64(1_700_000_000_000)

	if got := Remaining(created, created); got != TTL {
		t.Fatalf("expected full TTL remaining, got %v", got)
	}
	if got := Remaining(created, created+time.Hour.Milliseconds()); got != TTL-time.Hour {
		t.Fatalf("expected 23h remaining, got %v", got)
	}
	if got := Remaining(created, created+TTL.Milliseconds()+5_000); got != 0 {
		t.Fatalf("expected zero remaining after expiry, got %v", got)
	}
}
