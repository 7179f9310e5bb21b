package request

// CreateRoomRequest represents a room creation request. The topic is
// free text and resolved get-or-create by name. Any client-supplied
// host is ignored; the authenticated user always becomes the host.
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Topic       string `json:"topic" binding:"required,max=200"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// UpdateRoomRequest carries the same field set as creation; the host is
// not reassignable via the form
type UpdateRoomRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Topic       string `json:"topic" binding:"required,max=200"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// SearchRequest represents a room/topic search. The query is optional:
// an absent q behaves as the empty string and matches everything.
type SearchRequest struct {
	Query string `form:"q" binding:"omitempty,max=200"`
}
