package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"droproom/internal/expiry"
	"droproom/internal/ids"
	"droproom/internal/models"
)

// PostgresStore is a sqlx-backed Backend. Liveness is enforced in SQL
// against a cutoff computed from the caller's clock, so reads and appends
// never see an expired room even before the reaper has run.
type PostgresStore struct {
	db  *sqlx.DB
	now func() int64
}

// NewPostgresStore wraps an already-connected database.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: expiry.Now}
}

// cutoff is the oldest creation time still considered live.
func (s *PostgresStore) cutoff() int64 {
	return s.now() - expiry.TTL.Milliseconds()
}

// CreateRoom inserts a room, regenerating the id on the (unlikely)
// collision with an existing row.
func (s *PostgresStore) CreateRoom(ctx context.Context, ownerName string) (models.Room, error) {
	if ownerName == "" {
		return models.Room{}, ErrOwnerNameRequired
	}

	for {
		room := models.Room{ID: ids.NewRoomID(), OwnerName: ownerName, CreatedAt: s.now()}
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO rooms (id, owner_name, created_at) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			room.ID, room.OwnerName, room.CreatedAt)
		if err != nil {
			return models.Room{}, err
		}
		count, err := res.RowsAffected()
		if err != nil {
			return models.Room{}, err
		}
		if count == 1 {
			return room, nil
		}
	}
}

// GetRoom fetches a room that is present and still live.
func (s *PostgresStore) GetRoom(ctx context.Context, id string) (models.Room, error) {
	var room models.Room
	err := s.db.GetContext(ctx, &room,
		`SELECT id, owner_name, created_at FROM rooms WHERE id=$1 AND created_at >= $2`,
		id, s.cutoff())
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// RoomExists checks presence and liveness without loading the record.
func (s *PostgresStore) RoomExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE id=$1 AND created_at >= $2)`,
		id, s.cutoff())
	return exists, err
}

// DeleteRoom removes the room; messages go with it via ON DELETE CASCADE.
// An expired row is purged but reported as absent.
func (s *PostgresStore) DeleteRoom(ctx context.Context, id string) (bool, error) {
	var createdAt int64
	err := s.db.QueryRowxContext(ctx,
		`DELETE FROM rooms WHERE id=$1 RETURNING created_at`, id).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return expiry.IsLive(createdAt, s.now()), nil
}

// AppendMessage inserts the message only if the room is live at insert
// time; the guard and the write are one statement, so there is no window
// for a delete or expiry to slip between them.
func (s *PostgresStore) AppendMessage(ctx context.Context, roomID string, msg models.Message) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, room_id, user_id, user_name, content, type, file_name, file_size, file_type, created_at)
         SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
         WHERE EXISTS (SELECT 1 FROM rooms WHERE id=$2 AND created_at >= $11)`,
		msg.ID, roomID, msg.UserID, msg.UserName, msg.Content, msg.Type,
		msg.FileName, msg.FileSize, msg.FileType, msg.CreatedAt, s.cutoff())
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ListMessages returns the room's log in insertion order (the serial seq
// column, not created_at, so same-millisecond appends keep their order).
func (s *PostgresStore) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.SelectContext(ctx, &msgs,
		`SELECT id, room_id, user_id, user_name, content, type, file_name, file_size, file_type, created_at
         FROM messages WHERE room_id=$1 ORDER BY seq ASC`, roomID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// Reap deletes expired rooms, cascading their messages.
func (s *PostgresStore) Reap(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE created_at < $1`, s.cutoff())
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	return int(count), err
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
