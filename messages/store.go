package messages

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageStore is the persistence surface MessageService depends on.
// ListWindow returns at most limit messages ordered newest first, skipping
// the first offset rows; CountMessages ignores the window.
type MessageStore interface {
	InsertMessage(ctx context.Context, memberID int64, text string) (id int64, createdAt time.Time, err error)
	CountMessages(ctx context.Context) (int64, error)
	ListWindow(ctx context.Context, limit, offset int) ([]ChatMessage, error)
}

// PgMessageStore is the PostgreSQL-backed MessageStore.
type PgMessageStore struct {
	db *pgxpool.Pool
}

// NewMessageStore creates a MessageStore over the given pool.
func NewMessageStore(db *pgxpool.Pool) *PgMessageStore {
	return &PgMessageStore{db: db}
}

func (s *PgMessageStore) InsertMessage(ctx context.Context, memberID int64, text string) (int64, time.Time, error) {
	var id int64
	var createdAt time.Time
	query := `INSERT INTO messages (member_id, text) VALUES ($1, $2) RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query, memberID, text).Scan(&id, &createdAt); err != nil {
		return 0, time.Time{}, err
	}
	return id, createdAt, nil
}

func (s *PgMessageStore) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM messages`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PgMessageStore) ListWindow(ctx context.Context, limit, offset int) ([]ChatMessage, error) {
	query := `
		SELECT msg.id, msg.text, msg.created_at, m.id, m.username
		FROM messages msg
		JOIN members m ON m.id = msg.member_id
		ORDER BY msg.created_at DESC, msg.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]ChatMessage, 0, limit)
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.CreatedAt, &msg.Author.ID, &msg.Author.Username); err != nil {
			return nil, err
		}
		results = append(results, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
