package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"droproom/internal/expiry"
	"droproom/internal/ids"
	"droproom/internal/models"
)

// RedisStore keeps rooms as JSON values and logs as lists, both carrying
// the room's TTL so Redis itself acts as the reaper. The policy check still
// runs on every read; key expiry only bounds memory.
type RedisStore struct {
	client *redis.Client
	now    func() int64
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, now: expiry.Now}, nil
}

// NewRedisStoreWithClient wraps an existing client (used by tests).
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: expiry.Now}
}

func roomKey(id string) string {
	return fmt.Sprintf("room:%s", id)
}

func roomMessagesKey(id string) string {
	return fmt.Sprintf("room:%s:messages", id)
}

// CreateRoom stores the room under a fresh id with the full TTL. SETNX
// guards against the (unlikely) id collision; on collision a new id is
// drawn.
func (s *RedisStore) CreateRoom(ctx context.Context, ownerName string) (models.Room, error) {
	if ownerName == "" {
		return models.Room{}, ErrOwnerNameRequired
	}

	for {
		room := models.Room{ID: ids.NewRoomID(), OwnerName: ownerName, CreatedAt: s.now()}
		data, err := json.Marshal(room)
		if err != nil {
			return models.Room{}, err
		}
		set, err := s.client.SetNX(ctx, roomKey(room.ID), data, expiry.TTL).Result()
		if err != nil {
			return models.Room{}, err
		}
		if set {
			return room, nil
		}
	}
}

// GetRoom loads the room and re-applies the liveness policy.
func (s *RedisStore) GetRoom(ctx context.Context, id string) (models.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Room{}, ErrRoomNotFound
	}
	if err != nil {
		return models.Room{}, err
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return models.Room{}, err
	}
	if !expiry.IsLive(room.CreatedAt, s.now()) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, nil
}

// RoomExists reports presence and liveness.
func (s *RedisStore) RoomExists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetRoom(ctx, id)
	if errors.Is(err, ErrRoomNotFound) {
		return false, nil
	}
	return err == nil, err
}

// DeleteRoom removes the room record and its log in one shot.
func (s *RedisStore) DeleteRoom(ctx context.Context, id string) (bool, error) {
	data, err := s.client.GetDel(ctx, roomKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.client.Del(ctx, roomMessagesKey(id)).Err(); err != nil {
		return false, err
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return false, err
	}
	return expiry.IsLive(room.CreatedAt, s.now()), nil
}

// appendScript pushes onto the log only while the room key is still
// present, in one atomic step, and pins the log's TTL to the room key's
// remaining TTL so the log can never outlive the room. A delete that lands
// before the script runs leaves nothing for the push to recreate.
var appendScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[1])
local ttl = redis.call("PTTL", KEYS[1])
if ttl > 0 then
	redis.call("PEXPIRE", KEYS[2], ttl)
end
return 1
`)

// AppendMessage re-applies the liveness policy, then runs the guarded push.
func (s *RedisStore) AppendMessage(ctx context.Context, roomID string, msg models.Message) error {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pushed, err := appendScript.Run(ctx, s.client, []string{roomKey(roomID), roomMessagesKey(roomID)}, data).Int()
	if err != nil {
		return err
	}
	if pushed == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ListMessages returns the log in insertion (list) order.
func (s *RedisStore) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	entries, err := s.client.LRange(ctx, roomMessagesKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]models.Message, 0, len(entries))
	for _, entry := range entries {
		var msg models.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Reap is a no-op: key TTLs already purge expired rooms.
func (s *RedisStore) Reap(ctx context.Context) (int, error) {
	return 0, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
