package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droproom/internal/models"
)

func newTestFacade(now int64) (*Facade, *MemoryStore) {
	backend := newTestStore(now)
	f := NewFacade(backend)
	f.now = backend.now
	return f, backend
}

func TestFacadePostMessageStampsIdentity(t *testing.T) {
	f, _ := newTestFacade(5000)
	ctx := context.Background()

	room, err := f.CreateRoom(ctx, "Alice")
	require.NoError(t, err)

	msg, err := f.PostMessage(ctx, room.ID, models.MessageDraft{
		UserName: "Bob",
		Content:  "hi",
		Type:     models.MessageText,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.NotEmpty(t, msg.UserID)
	assert.Equal(t, room.ID, msg.RoomID)
	assert.Equal(t, "Bob", msg.UserName)
	assert.Equal(t, "hi", msg.Content)
	assert.Equal(t, models.MessageText, msg.Type)
	assert.GreaterOrEqual(t, msg.CreatedAt, room.CreatedAt)
}

func TestFacadePostMessageRoundTrip(t *testing.T) {
	f, _ := newTestFacade(5000)
	ctx := context.Background()

	room, err := f.CreateRoom(ctx, "Alice")
	require.NoError(t, err)

	posted, err := f.PostMessage(ctx, room.ID, models.MessageDraft{
		UserName: "Bob",
		Content:  "data:image/png;base64,AAAA",
		Type:     models.MessageImage,
		FileName: "pic.png",
		FileSize: 4,
		FileType: "image/png",
	})
	require.NoError(t, err)

	msgs, err := f.ListMessages(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, posted, msgs[0], "stored message must equal the echoed one field for field")
}

func TestFacadePostMessageUnknownRoom(t *testing.T) {
	f, _ := newTestFacade(5000)

	_, err := f.PostMessage(context.Background(), "missing", models.MessageDraft{
		UserName: "Bob",
		Type:     models.MessageText,
	})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestFacadeListMessagesUnknownRoom(t *testing.T) {
	f, _ := newTestFacade(5000)

	_, err := f.ListMessages(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

// Full lifecycle: create, post, list, delete, then everything 404s.
func TestFacadeLifecycleScenario(t *testing.T) {
	f, _ := newTestFacade(5000)
	ctx := context.Background()

	room, err := f.CreateRoom(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "Alice", room.OwnerName)

	msg, err := f.PostMessage(ctx, room.ID, models.MessageDraft{
		UserName: "Bob",
		Content:  "hi",
		Type:     models.MessageText,
	})
	require.NoError(t, err)
	require.Equal(t, room.ID, msg.RoomID)
	require.GreaterOrEqual(t, msg.CreatedAt, room.CreatedAt)

	msgs, err := f.ListMessages(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, msg, msgs[0])

	deleted, err := f.DeleteRoom(ctx, room.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = f.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, err = f.ListMessages(ctx, room.ID)
	require.ErrorIs(t, err, ErrRoomNotFound)

	deleted, err = f.DeleteRoom(ctx, room.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}
