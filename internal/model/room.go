package model

import (
	"database/sql"
	"time"
)

// Room is a topic-tagged discussion room. Both host_id and topic_id are
// weak references: deleting the host or the topic clears the column and
// the room survives. Messages and participant rows cascade with the room.
type Room struct {
	ID          string         `db:"id" json:"id"`
	HostID      sql.NullString `db:"host_id" json:"host_id,omitempty"`
	TopicID     sql.NullString `db:"topic_id" json:"topic_id,omitempty"`
	Name        string         `db:"name" json:"name"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// GetHostID returns host_id or empty string for hostless rooms
func (r *Room) GetHostID() string {
	if r.HostID.Valid {
		return r.HostID.String
	}
	return ""
}

// GetDescription returns description or empty string
func (r *Room) GetDescription() string {
	if r.Description.Valid {
		return r.Description.String
	}
	return ""
}

// IsHostedBy checks if the given user is the room host
func (r *Room) IsHostedBy(userID string) bool {
	return r.HostID.Valid && r.HostID.String == userID
}

// RoomWithTopic includes topic and host info for listings
type RoomWithTopic struct {
	Room
	TopicName        sql.NullString `db:"topic_name" json:"topic_name,omitempty"`
	HostUsername     sql.NullString `db:"host_username" json:"host_username,omitempty"`
	ParticipantCount int            `db:"participant_count" json:"participant_count"`
}

// GetTopicName returns the topic name or empty string for untagged rooms
func (r *RoomWithTopic) GetTopicName() string {
	if r.TopicName.Valid {
		return r.TopicName.String
	}
	return ""
}

// GetHostUsername returns the host username or empty string
func (r *RoomWithTopic) GetHostUsername() string {
	if r.HostUsername.Valid {
		return r.HostUsername.String
	}
	return ""
}

// RoomParticipant records that a user has posted in a room. Membership
// is additive only; deleting a message never removes its author here.
type RoomParticipant struct {
	RoomID   string    `db:"room_id" json:"room_id"`
	UserID   string    `db:"user_id" json:"user_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// ParticipantWithUser includes user info for the room detail view
type ParticipantWithUser struct {
	RoomParticipant
	Username string `db:"username" json:"username"`
}
