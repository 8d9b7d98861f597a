package store

import (
	"context"
	"sync"

	"droproom/internal/expiry"
	"droproom/internal/ids"
	"droproom/internal/models"
)

// roomEntry holds one room and its log. Every mutation of the entry runs
// under its own mutex, so appends to one room are linearized without any
// cross-room contention.
type roomEntry struct {
	mu       sync.Mutex
	gone     bool
	room     models.Room
	messages []models.Message
}

// MemoryStore is the default in-process backend: a map of room entries
// guarded by a RWMutex for membership only. It implements Backend.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry

	// overridable in tests
	now   func() int64
	newID func() string
}

// NewMemoryStore initializes an empty in-memory backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*roomEntry),
		now:   expiry.Now,
		newID: ids.NewRoomID,
	}
}

// CreateRoom generates an id, stamps the creation time and stores the room.
// Id generation retries on collision with any existing entry.
func (s *MemoryStore) CreateRoom(ctx context.Context, ownerName string) (models.Room, error) {
	if ownerName == "" {
		return models.Room{}, ErrOwnerNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, taken := s.rooms[id]; !taken {
			break
		}
		id = s.newID()
	}

	room := models.Room{ID: id, OwnerName: ownerName, CreatedAt: s.now()}
	s.rooms[id] = &roomEntry{room: room}
	return room, nil
}

// GetRoom returns the room only if it is present and live at call time.
func (s *MemoryStore) GetRoom(ctx context.Context, id string) (models.Room, error) {
	entry, ok := s.entry(id)
	if !ok {
		return models.Room{}, ErrRoomNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.gone || !expiry.IsLive(entry.room.CreatedAt, s.now()) {
		return models.Room{}, ErrRoomNotFound
	}
	return entry.room, nil
}

// RoomExists reports whether the room is present and live.
func (s *MemoryStore) RoomExists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetRoom(ctx, id)
	if err == ErrRoomNotFound {
		return false, nil
	}
	return err == nil, err
}

// DeleteRoom removes the room and discards its message log. Expired rooms
// are physically purged but reported as absent, exactly like a second
// delete.
func (s *MemoryStore) DeleteRoom(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	entry, ok := s.rooms[id]
	if ok {
		delete(s.rooms, id)
	}
	s.mu.Unlock()
	if !ok {
		return false, nil
	}

	entry.mu.Lock()
	wasLive := !entry.gone && expiry.IsLive(entry.room.CreatedAt, s.now())
	entry.gone = true
	entry.messages = nil
	entry.mu.Unlock()
	return wasLive, nil
}

// AppendMessage appends under the room's lock, re-checking liveness there:
// a delete or expiry that won the race surfaces as ErrRoomNotFound, never
// as a write to a dead room.
func (s *MemoryStore) AppendMessage(ctx context.Context, roomID string, msg models.Message) error {
	entry, ok := s.entry(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.gone || !expiry.IsLive(entry.room.CreatedAt, s.now()) {
		return ErrRoomNotFound
	}
	entry.messages = append(entry.messages, msg)
	return nil
}

// ListMessages returns a copy of the room's log in insertion order. Absent
// or expired rooms yield an empty slice; the facade turns that case into
// not-found before this is reached.
func (s *MemoryStore) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	entry, ok := s.entry(roomID)
	if !ok {
		return []models.Message{}, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.gone || !expiry.IsLive(entry.room.CreatedAt, s.now()) {
		return []models.Message{}, nil
	}
	out := make([]models.Message, len(entry.messages))
	copy(out, entry.messages)
	return out, nil
}

// Reap purges rooms whose TTL has lapsed and returns how many were removed.
func (s *MemoryStore) Reap(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.RLock()
	expired := make([]string, 0)
	for id, entry := range s.rooms {
		if !expiry.IsLive(entry.room.CreatedAt, now) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		s.mu.Lock()
		entry, ok := s.rooms[id]
		if ok {
			delete(s.rooms, id)
		}
		s.mu.Unlock()
		if !ok {
			continue
		}
		entry.mu.Lock()
		entry.gone = true
		entry.messages = nil
		entry.mu.Unlock()
		removed++
	}
	return removed, nil
}

// Ping always succeeds for the in-process backend.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close drops all state.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = make(map[string]*roomEntry)
	return nil
}

func (s *MemoryStore) entry(id string) (*roomEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.rooms[id]
	return entry, ok
}
