package messages

// CreateMessageRequest is the payload for posting a message.
type CreateMessageRequest struct {
	Text string `json:"text" example:"hello everyone"`
}

// ListResponse is the paginated feed payload. Count is the total number of
// messages in the feed, independent of the requested window.
type ListResponse struct {
	Count   int64         `json:"count"`
	Results []ChatMessage `json:"results"`
}
