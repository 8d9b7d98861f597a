// Package ids generates the opaque identifiers used across the service.
package ids

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const roomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// roomIDLength keeps room codes short enough to share by hand while leaving
// 62^9 possible values.
const roomIDLength = 9

// NewRoomID returns a short alphanumeric room code, safe to use as a URL
// path segment.
func NewRoomID() string {
	b := make([]byte, roomIDLength)
	max := big.NewInt(int64(len(roomAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return fallbackRoomID()
		}
		b[i] = roomAlphabet[n.Int64()]
	}
	return string(b)
}

// fallbackRoomID derives a room code from a UUID when crypto/rand fails.
// The hyphens are stripped so the result keeps the alphanumeric shape.
func fallbackRoomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:roomIDLength]
}

// NewMessageID returns a unique message identifier.
func NewMessageID() string {
	return uuid.NewString()
}

// NewUserID returns a fresh ephemeral user identifier. There are no
// accounts; every post gets its own identity.
func NewUserID() string {
	return uuid.NewString()
}
