package telemetry

import (
	"context"
	"log"
	"time"
)

// Publisher is the transport the emitter publishes through.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// EventEmitter publishes room lifecycle events for downstream consumers
// (cleanup jobs, analytics). Emission is fire-and-forget; a broker outage
// never fails the request that triggered the event.
type EventEmitter struct {
	publisher   Publisher
	service     string
	environment string
}

// EventEnvelope wraps every published event.
type EventEnvelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RequestID     string `json:"request_id,omitempty"`
	Payload       any    `json:"payload"`
}

// RoomPayload describes the room an event refers to.
type RoomPayload struct {
	RoomID    string `json:"room_id"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// MessagePayload describes a stored message.
type MessagePayload struct {
	RoomID      string `json:"room_id"`
	MessageID   string `json:"message_id"`
	MessageType string `json:"message_type"`
}

// ReapPayload reports a reaper sweep.
type ReapPayload struct {
	Removed int `json:"removed"`
}

// NewEventEmitter builds an EventEmitter.
func NewEventEmitter(publisher Publisher, service, environment string) *EventEmitter {
	return &EventEmitter{publisher: publisher, service: service, environment: environment}
}

// RoomCreated reports a new room.
func (e *EventEmitter) RoomCreated(ctx context.Context, requestID, roomID string, createdAt int64) {
	e.emit(ctx, "rooms.created", "room_created", requestID, RoomPayload{RoomID: roomID, CreatedAt: createdAt})
}

// RoomDeleted reports an explicit room deletion.
func (e *EventEmitter) RoomDeleted(ctx context.Context, requestID, roomID string) {
	e.emit(ctx, "rooms.deleted", "room_deleted", requestID, RoomPayload{RoomID: roomID})
}

// MessagePosted reports a stored message.
func (e *EventEmitter) MessagePosted(ctx context.Context, requestID, roomID, messageID, messageType string) {
	e.emit(ctx, "messages.posted", "message_posted", requestID, MessagePayload{
		RoomID:      roomID,
		MessageID:   messageID,
		MessageType: messageType,
	})
}

// RoomsReaped reports a reaper sweep that removed expired rooms.
func (e *EventEmitter) RoomsReaped(ctx context.Context, removed int) {
	e.emit(ctx, "rooms.reaped", "rooms_reaped", "", ReapPayload{Removed: removed})
}

func (e *EventEmitter) emit(ctx context.Context, routingKey, eventType, requestID string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := EventEnvelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, routingKey, envelope); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
