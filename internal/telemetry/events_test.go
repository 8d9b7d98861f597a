package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"droproom/internal/mocks"
)

func TestEmitterPublishesRoomCreated(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewEventEmitter(publisher, "droproom", "test")

	publisher.On("Publish", mock.Anything, "rooms.created", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(EventEnvelope)
		if !ok {
			return false
		}
		payload, ok := envelope.Payload.(RoomPayload)
		return ok &&
			envelope.EventType == "room_created" &&
			envelope.Service == "droproom" &&
			envelope.Environment == "test" &&
			envelope.RequestID == "req-1" &&
			payload.RoomID == "abc123"
	})).Return(nil).Once()

	emitter.RoomCreated(context.Background(), "req-1", "abc123", 1700)
	publisher.AssertExpectations(t)
}

func TestEmitterPublishesMessagePosted(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewEventEmitter(publisher, "droproom", "test")

	publisher.On("Publish", mock.Anything, "messages.posted", mock.Anything).Return(nil).Once()

	emitter.MessagePosted(context.Background(), "req-1", "abc123", "m1", "text")
	publisher.AssertExpectations(t)
}

func TestEmitterSurvivesPublishFailure(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewEventEmitter(publisher, "droproom", "test")

	publisher.On("Publish", mock.Anything, "rooms.deleted", mock.Anything).Return(assert.AnError).Once()

	// emission is fire-and-forget; a broker error must not panic or bubble
	require.NotPanics(t, func() {
		emitter.RoomDeleted(context.Background(), "req-1", "abc123")
	})
	publisher.AssertExpectations(t)
}

func TestNilEmitterIsSafe(t *testing.T) {
	var emitter *EventEmitter
	require.NotPanics(t, func() {
		emitter.RoomCreated(context.Background(), "", "abc123", 0)
	})
}
