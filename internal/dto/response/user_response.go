package response

import (
	"time"

	"github.com/go-demo/studyhub/internal/model"
)

// ProfileResponse represents a public user profile
type ProfileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}

// NewProfileResponse creates a profile response from model
func NewProfileResponse(p *model.UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// AuthResponse bundles a user with a token pair
type AuthResponse struct {
	User         *ProfileResponse `json:"user"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    string           `json:"expires_at"`
}

// TokenResponse carries a refreshed token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UserPageResponse is the profile page payload: the user, the rooms
// they host, their messages and all topics
type UserPageResponse struct {
	User         *ProfileResponse    `json:"user"`
	Rooms        []*RoomResponse     `json:"rooms"`
	RoomMessages []*FeedItemResponse `json:"room_messages"`
	Topics       []*TopicResponse    `json:"topics"`
}
