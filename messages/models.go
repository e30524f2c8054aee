// Package messages implements the shared chat feed: posting a message and
// listing the feed newest-first with offset pagination.
package messages

import "time"

// AuthorSummary is the author projection embedded in every feed entry.
// Only id and username are exposed; never the email.
type AuthorSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ChatMessage is a single posted text entry attributed to a member. The
// author is fixed at creation; messages are never edited or deleted.
type ChatMessage struct {
	ID        int64         `json:"id"`
	Text      string        `json:"text"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}
