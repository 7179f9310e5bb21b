package response

import (
	"time"

	"github.com/go-demo/studyhub/internal/model"
)

// MessageResponse represents a message in a room
type MessageResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// NewMessageResponse creates a message response from model
func NewMessageResponse(m *model.MessageWithUser) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		Username:  m.Username,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

// NewMessageListResponse converts a message slice
func NewMessageListResponse(messages []*model.MessageWithUser) []*MessageResponse {
	out := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = NewMessageResponse(m)
	}
	return out
}

// FeedItemResponse is a message in an activity feed, with its room name
type FeedItemResponse struct {
	MessageResponse
	RoomName string `json:"room_name"`
}

// NewFeedItemResponse creates a feed item from model
func NewFeedItemResponse(m *model.MessageWithRoom) *FeedItemResponse {
	return &FeedItemResponse{
		MessageResponse: *NewMessageResponse(&m.MessageWithUser),
		RoomName:        m.RoomName,
	}
}

// NewFeedResponse converts a feed slice
func NewFeedResponse(messages []*model.MessageWithRoom) []*FeedItemResponse {
	out := make([]*FeedItemResponse, len(messages))
	for i, m := range messages {
		out[i] = NewFeedItemResponse(m)
	}
	return out
}
