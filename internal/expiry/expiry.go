// Package expiry is the single source of truth for room liveness. Every
// backend and the store facade defer to it instead of comparing timestamps
// themselves.
package expiry

import "time"

// TTL is the fixed liveness window of a room, measured from creation.
const TTL = 24 * time.Hour

// IsLive reports whether a room created at createdAt is still live at now.
// Both are epoch milliseconds; the instant exactly TTL after creation is the
// last live one.
func IsLive(createdAt, now int64) bool {
	return now-createdAt <= TTL.Milliseconds()
}

// Remaining returns the time left before expiry, clamped to zero.
func Remaining(createdAt, now int64) time.Duration {
	left := time.Duration(createdAt+TTL.Milliseconds()-now) * time.Millisecond
	if left < 0 {
		return 0
	}
	return left
}

// Now returns the current time as epoch milliseconds.
func Now() int64 {
	return time.Now().UnixMilli()
}
