package messages

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
)

// maxMessageLength is the upper bound on message text, counted in runes.
const maxMessageLength = 5000

// MessageService provides feed operations.
type MessageService struct {
	store MessageStore
}

// NewMessageService creates a new MessageService.
func NewMessageService(store MessageStore) *MessageService {
	return &MessageService{store: store}
}

/// validateText checks a message body: non-blank after trimming, at most
// maxMessageLength runes. Returns a field -> message map, nil when valid.
func validateText(text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return map[string]string{"text": "this field may not be blank"}
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return map[string]string{"text": "ensure this field has no more than 5000 characters"}
	}
	return nil
}

// Create validates and stores a new message authored by member. The
// timestamp is assigned by the database; nothing is written when validation
// fails.
func (s *MessageService) Create(ctx context.Context, member *auth.Member, text string) (*ChatMessage, error) {
	if fields := validateText(text); fields != nil {
		return nil, apperror.NewFieldValidationError(fields)
	}

	id, createdAt, err := s.store.InsertMessage(ctx, member.ID, text)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create message", err)
	}
	return &ChatMessage{
		ID:        id,
		Text:      text,
		Author:    AuthorSummary{ID: member.ID, Username: member.Username},
		CreatedAt: createdAt,
	}, nil
}

// List returns the window [offset, offset+limit) over all messages ordered
// newest first, together with the total message count.
func (s *MessageService) List(ctx context.Context, limit, offset int) (*ListResponse, error) {
	count, err := s.store.CountMessages(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count messages", err)
	}

	results, err := s.store.ListWindow(ctx, limit, offset)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list messages", err)
	}

	return &ListResponse{Count: count, Results: results}, nil
}
