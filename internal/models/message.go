package models

// MessageType describes what a message carries. Non-text messages hold a
// data-URL payload in Content and carry the file metadata fields.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessagePDF   MessageType = "pdf"
	MessageFile  MessageType = "file"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessagePDF, MessageFile:
		return true
	}
	return false
}

// Message is one unit of shared content appended to a room's ordered log.
// Messages are immutable; there is no edit or per-message delete.
type Message struct {
	ID        string      `db:"id" json:"id"`
	RoomID    string      `db:"room_id" json:"roomId"`
	UserID    string      `db:"user_id" json:"userId"`
	UserName  string      `db:"user_name" json:"userName"`
	Content   string      `db:"content" json:"content"`
	Type      MessageType `db:"type" json:"type"`
	FileName  string      `db:"file_name" json:"fileName,omitempty"`
	FileSize  int64       `db:"file_size" json:"fileSize,omitempty"`
	FileType  string      `db:"file_type" json:"fileType,omitempty"`
	CreatedAt int64       `db:"created_at" json:"createdAt"` // epoch milliseconds
}

// MessageDraft is the caller-supplied part of a message; the store stamps
// identity and timestamp when the draft is posted.
type MessageDraft struct {
	UserName string      `json:"userName"`
	Content  string      `json:"content"`
	Type     MessageType `json:"type"`
	FileName string      `json:"fileName,omitempty"`
	FileSize int64       `json:"fileSize,omitempty"`
	FileType string      `json:"fileType,omitempty"`
}

// RoomEvent is broadcast through websockets to room subscribers.
type RoomEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	RoomID  string   `json:"roomId,omitempty"`
}
