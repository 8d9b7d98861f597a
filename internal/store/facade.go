package store

import (
	"context"

	"droproom/internal/expiry"
	"droproom/internal/ids"
	"droproom/internal/models"
)

// Facade composes a Backend into the operations the HTTP layer needs. It
// stamps message identity and timestamps and re-verifies room liveness
// before touching the log; the backend re-checks again under its own lock.
type Facade struct {
	backend Backend
	now     func() int64
}

// NewFacade wraps a backend.
func NewFacade(backend Backend) *Facade {
	return &Facade{backend: backend, now: expiry.Now}
}

// CreateRoom delegates to the backend.
func (f *Facade) CreateRoom(ctx context.Context, ownerName string) (models.Room, error) {
	return f.backend.CreateRoom(ctx, ownerName)
}

// GetRoom delegates to the backend.
func (f *Facade) GetRoom(ctx context.Context, id string) (models.Room, error) {
	return f.backend.GetRoom(ctx, id)
}

// RoomExists delegates to the backend.
func (f *Facade) RoomExists(ctx context.Context, id string) (bool, error) {
	return f.backend.RoomExists(ctx, id)
}

// DeleteRoom delegates to the backend.
func (f *Facade) DeleteRoom(ctx context.Context, id string) (bool, error) {
	return f.backend.DeleteRoom(ctx, id)
}

// PostMessage verifies the room is live, builds the full message from the
// draft and appends it. The returned message is exactly what was stored, so
// callers can echo it back verbatim.
func (f *Facade) PostMessage(ctx context.Context, roomID string, draft models.MessageDraft) (models.Message, error) {
	exists, err := f.backend.RoomExists(ctx, roomID)
	if err != nil {
		return models.Message{}, err
	}
	if !exists {
		return models.Message{}, ErrRoomNotFound
	}

	msg := models.Message{
		ID:        ids.NewMessageID(),
		RoomID:    roomID,
		UserID:    ids.NewUserID(),
		UserName:  draft.UserName,
		Content:   draft.Content,
		Type:      draft.Type,
		FileName:  draft.FileName,
		FileSize:  draft.FileSize,
		FileType:  draft.FileType,
		CreatedAt: f.now(),
	}

	if err := f.backend.AppendMessage(ctx, roomID, msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// ListMessages verifies the room is live, then returns its log in insertion
// order.
func (f *Facade) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	exists, err := f.backend.RoomExists(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}
	return f.backend.ListMessages(ctx, roomID)
}

// Reap purges expired rooms from the backend.
func (f *Facade) Reap(ctx context.Context) (int, error) {
	return f.backend.Reap(ctx)
}

// Ping reports backend health.
func (f *Facade) Ping(ctx context.Context) error {
	return f.backend.Ping(ctx)
}

// Close releases the backend.
func (f *Facade) Close() error {
	return f.backend.Close()
}
