package model

import "time"

// Topic is a free-text label grouping rooms. Names are not unique:
// concurrent get-or-create may leave duplicates and nothing in the
// application deduplicates them.
type Topic struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TopicWithRoomCount includes the number of rooms tagged with the topic
type TopicWithRoomCount struct {
	Topic
	RoomCount int `db:"room_count" json:"room_count"`
}
