package response

import (
	"time"

	"github.com/go-demo/studyhub/internal/model"
)

// RoomResponse represents a room in listings
type RoomResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Topic            string `json:"topic"`
	HostID           string `json:"host_id,omitempty"`
	HostUsername     string `json:"host_username,omitempty"`
	ParticipantCount int    `json:"participant_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// NewRoomResponse creates a room response from model
func NewRoomResponse(room *model.RoomWithTopic) *RoomResponse {
	return &RoomResponse{
		ID:               room.ID,
		Name:             room.Name,
		Description:      room.GetDescription(),
		Topic:            room.GetTopicName(),
		HostID:           room.GetHostID(),
		HostUsername:     room.GetHostUsername(),
		ParticipantCount: room.ParticipantCount,
		CreatedAt:        room.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        room.UpdatedAt.Format(time.RFC3339),
	}
}

// NewRoomListResponse converts a room slice
func NewRoomListResponse(rooms []*model.RoomWithTopic) []*RoomResponse {
	out := make([]*RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = NewRoomResponse(r)
	}
	return out
}

// ParticipantResponse represents a room participant
type ParticipantResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	JoinedAt string `json:"joined_at"`
}

// NewParticipantResponse creates a participant response from model
func NewParticipantResponse(p *model.ParticipantWithUser) *ParticipantResponse {
	return &ParticipantResponse{
		UserID:   p.UserID,
		Username: p.Username,
		JoinedAt: p.JoinedAt.Format(time.RFC3339),
	}
}

// BrowseResponse is the home listing payload
type BrowseResponse struct {
	Rooms        []*RoomResponse     `json:"rooms"`
	Topics       []*TopicResponse    `json:"topics"`
	RoomCount    int                 `json:"room_count"`
	RoomMessages []*FeedItemResponse `json:"room_messages"`
}

// RoomDetailResponse is the room page payload
type RoomDetailResponse struct {
	Room         *RoomResponse          `json:"room"`
	RoomMessages []*MessageResponse     `json:"room_messages"`
	Participants []*ParticipantResponse `json:"participants"`
}

// NewRoomDetailResponse creates a room detail response from the service
// payload
func NewRoomDetailResponse(room *model.RoomWithTopic, messages []*model.MessageWithUser, participants []*model.ParticipantWithUser) *RoomDetailResponse {
	ps := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		ps[i] = NewParticipantResponse(p)
	}

	return &RoomDetailResponse{
		Room:         NewRoomResponse(room),
		RoomMessages: NewMessageListResponse(messages),
		Participants: ps,
	}
}
