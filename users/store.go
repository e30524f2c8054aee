package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/groupchat-go/auth"
)

// ProfileStore is the persistence surface UserService depends on.
// GetMemberByID returns pgx.ErrNoRows on a miss; UpdateMember surfaces
// unique constraint violations unchanged so the service can map them.
type ProfileStore interface {
	GetMemberByID(ctx context.Context, memberID int64) (*auth.Member, error)
	// UpdateMember applies a partial update: nil fields are left untouched.
	UpdateMember(ctx context.Context, memberID int64, username, email *string) (*auth.Member, error)
	UsernameTakenByOther(ctx context.Context, username string, selfID int64) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, selfID int64) (bool, error)
}

// PgProfileStore is the PostgreSQL-backed ProfileStore.
type PgProfileStore struct {
	db *pgxpool.Pool
}

// NewProfileStore creates a ProfileStore over the given pool.
func NewProfileStore(db *pgxpool.Pool) *PgProfileStore {
	return &PgProfileStore{db: db}
}

func (s *PgProfileStore) GetMemberByID(ctx context.Context, memberID int64) (*auth.Member, error) {
	var member auth.Member
	query := `SELECT id, username, email, created_at FROM members WHERE id = $1`
	err := s.db.QueryRow(ctx, query, memberID).
		Scan(&member.ID, &member.Username, &member.Email, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *PgProfileStore) UpdateMember(ctx context.Context, memberID int64, username, email *string) (*auth.Member, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *username)
		argID++
	}
	if email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *email)
		argID++
	}
	if len(setClauses) == 0 {
		return s.GetMemberByID(ctx, memberID)
	}
	args = append(args, memberID)

	query := fmt.Sprintf(`
		UPDATE members
		SET %s
		WHERE id = $%d
		RETURNING id, username, email, created_at
	`, strings.Join(setClauses, ", "), argID)

	var updated auth.Member
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&updated.ID, &updated.Username, &updated.Email, &updated.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *PgProfileStore) UsernameTakenByOther(ctx context.Context, username string, selfID int64) (bool, error) {
	return s.takenByOther(ctx, "username", username, selfID)
}

func (s *PgProfileStore) EmailTakenByOther(ctx context.Context, email string, selfID int64) (bool, error) {
	return s.takenByOther(ctx, "email", email, selfID)
}

// takenByOther reports whether any member other than selfID already holds
// the given value in column. column is always a literal from this package,
// never user input.
func (s *PgProfileStore) takenByOther(ctx context.Context, column, value string, selfID int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM members WHERE %s = $1 AND id <> $2)`, column)
	if err := s.db.QueryRow(ctx, query, value, selfID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
