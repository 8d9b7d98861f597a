package ids

import (
	"regexp"
	"testing"
)

var urlSafe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func TestNewRoomIDShape(t *testing.T) {
	id := NewRoomID()
	if len(id) != roomIDLength {
		t.Fatalf("expected %d chars, got %q", roomIDLength, id)
	}
	if !urlSafe.MatchString(id) {
		t.Fatalf("room id %q is not URL-safe alphanumeric", id)
	}
}

func TestNewRoomIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10_000)
	for i := 0; i < 10_000; i++ {
		id := NewRoomID()
		if seen[id] {
			t.Fatalf("duplicate room id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestFallbackRoomIDShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := fallbackRoomID()
		if len(id) != roomIDLength {
			t.Fatalf("expected %d chars, got %q", roomIDLength, id)
		}
		if !urlSafe.MatchString(id) {
			t.Fatalf("fallback room id %q is not URL-safe alphanumeric", id)
		}
	}
}

func TestMessageAndUserIDsDistinct(t *testing.T) {
	if NewMessageID() == NewMessageID() {
		t.Fatalf("message ids must be unique")
	}
	if NewUserID() == NewUserID() {
		t.Fatalf("user ids must be unique")
	}
}
