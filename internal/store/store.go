// Package store owns room lifecycle and per-room ordered message
// accumulation. Backends are pluggable; the Facade is the only surface the
// HTTP layer touches.
package store

import (
	"context"
	"errors"

	"droproom/internal/models"
)

// ErrRoomNotFound covers a room that never existed, was deleted, or has
// expired. Callers cannot tell these apart, by design: an expired room's
// data is as gone as a deleted one's.
var ErrRoomNotFound = errors.New("room not found")

// RoomStore owns room records and decides liveness per call.
type RoomStore interface {
	// CreateRoom stamps id and creation time and stores the record.
	CreateRoom(ctx context.Context, ownerName string) (models.Room, error)
	// GetRoom returns the room only if present and live at call time.
	GetRoom(ctx context.Context, id string) (models.Room, error)
	// RoomExists is GetRoom without materializing the record.
	RoomExists(ctx context.Context, id string) (bool, error)
	// DeleteRoom removes the room and all its messages. It reports whether
	// a room was actually present; deleting twice returns false, not an
	// error.
	DeleteRoom(ctx context.Context, id string) (bool, error)
}

// MessageLog owns the append-only per-room message sequence.
type MessageLog interface {
	// AppendMessage appends msg to the room's sequence. Liveness is
	// re-checked at call time under the room's own lock, so a room
	// expiring or being deleted between the caller's existence check and
	// the append surfaces as ErrRoomNotFound rather than a phantom write.
	AppendMessage(ctx context.Context, roomID string, msg models.Message) error
	// ListMessages returns the sequence in insertion order. A live room
	// with no messages yields an empty slice, not an error.
	ListMessages(ctx context.Context, roomID string) ([]models.Message, error)
}

// Backend is what a storage implementation provides: room records, message
// sequences, and connection lifecycle. Reap proactively purges expired
// rooms to bound resource use; correctness never depends on it, the lazy
// per-call liveness check is the ground truth.
type Backend interface {
	RoomStore
	MessageLog
	Reap(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// Store is the surface handlers depend on: the four room operations plus
// message posting and listing with the facade's re-validation discipline.
type Store interface {
	RoomStore
	PostMessage(ctx context.Context, roomID string, draft models.MessageDraft) (models.Message, error)
	ListMessages(ctx context.Context, roomID string) ([]models.Message, error)
	Reap(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrOwnerNameRequired rejects room creation with an empty owner name.
var ErrOwnerNameRequired = errors.New("owner name required")
