package response

import "github.com/go-demo/studyhub/internal/model"

// TopicResponse represents a topic
type TopicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewTopicResponse creates a topic response from model
func NewTopicResponse(t *model.Topic) *TopicResponse {
	return &TopicResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}

// NewTopicListResponse converts a topic slice
func NewTopicListResponse(topics []*model.Topic) []*TopicResponse {
	out := make([]*TopicResponse, len(topics))
	for i, t := range topics {
		out[i] = NewTopicResponse(t)
	}
	return out
}

// TopicWithCountResponse includes the number of rooms under the topic
type TopicWithCountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomCount int    `json:"room_count"`
}

// NewTopicWithCountResponse creates a counted topic response from model
func NewTopicWithCountResponse(t *model.TopicWithRoomCount) *TopicWithCountResponse {
	return &TopicWithCountResponse{
		ID:        t.ID,
		Name:      t.Name,
		RoomCount: t.RoomCount,
	}
}
