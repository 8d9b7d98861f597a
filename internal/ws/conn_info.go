package ws

import "time"

// ConnInfo carries per-connection metadata for logging and metrics.
type ConnInfo struct {
	ConnID      string
	IP          string
	RequestID   string
	ConnectedAt time.Time
}
