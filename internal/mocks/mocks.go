package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"droproom/internal/models"
)

// StoreMock implements store.Store for handler tests.
type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) CreateRoom(ctx context.Context, ownerName string) (models.Room, error) {
	args := m.Called(ctx, ownerName)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *StoreMock) GetRoom(ctx context.Context, id string) (models.Room, error) {
	args := m.Called(ctx, id)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *StoreMock) RoomExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) DeleteRoom(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) PostMessage(ctx context.Context, roomID string, draft models.MessageDraft) (models.Message, error) {
	args := m.Called(ctx, roomID, draft)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *StoreMock) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	args := m.Called(ctx, roomID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *StoreMock) Reap(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *StoreMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StoreMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
