package models

// Room is a time-bounded sharing session. All fields are immutable after
// creation; liveness is computed from CreatedAt, never stored.
type Room struct {
	ID        string `db:"id" json:"id"`
	OwnerName string `db:"owner_name" json:"ownerName"`
	CreatedAt int64  `db:"created_at" json:"createdAt"` // epoch milliseconds
}
