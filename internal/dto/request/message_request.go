package request

// PostMessageRequest represents a message post. The body carries no
// presence constraint at this layer: an empty body is accepted and
// stored as-is.
type PostMessageRequest struct {
	Body string `json:"body" binding:"max=10000"`
}
