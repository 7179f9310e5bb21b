package model

import "time"

// Message is a timestamped post by a user in a room. Both references are
// hard: deleting the room or the author deletes the message.
type Message struct {
	ID        string    `db:"id" json:"id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Preview returns the first 50 runes of the body for logs and listings
func (m *Message) Preview() string {
	runes := []rune(m.Body)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return m.Body
}

// MessageWithUser includes author info
type MessageWithUser struct {
	Message
	Username string `db:"username" json:"username"`
}

// MessageWithRoom includes author and room info for activity feeds
type MessageWithRoom struct {
	MessageWithUser
	RoomName string `db:"room_name" json:"room_name"`
}
