package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MemberStore is the persistence surface AuthService depends on. Lookups
// return pgx.ErrNoRows when no member matches; CreateMember surfaces unique
// constraint violations unchanged so the service can map them to field
// errors.
type MemberStore interface {
	CreateMember(ctx context.Context, member *Member) error
	GetMemberByUsername(ctx context.Context, username string) (*Member, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

// TokenStore is the persistence surface TokenService depends on. GetByToken
// returns pgx.ErrNoRows on a miss; DeleteToken deleting an absent row is a
// no-op.
type TokenStore interface {
	InsertToken(ctx context.Context, memberID int64, token string) error
	GetByToken(ctx context.Context, token string) (*Member, *AuthToken, error)
	DeleteToken(ctx context.Context, token string) error
}

// PgMemberStore is the PostgreSQL-backed MemberStore.
type PgMemberStore struct {
	db *pgxpool.Pool
}

// NewMemberStore creates a MemberStore over the given pool.
func NewMemberStore(db *pgxpool.Pool) *PgMemberStore {
	return &PgMemberStore{db: db}
}

func (s *PgMemberStore) CreateMember(ctx context.Context, member *Member) error {
	query := `INSERT INTO members (username, email, password)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	return s.db.QueryRow(ctx, query, member.Username, member.Email, member.HashedPassword).
		Scan(&member.ID, &member.CreatedAt)
}

func (s *PgMemberStore) GetMemberByUsername(ctx context.Context, username string) (*Member, error) {
	var member Member
	query := `SELECT id, username, email, password, created_at FROM members WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).
		Scan(&member.ID, &member.Username, &member.Email, &member.HashedPassword, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UsernameExists reports whether a member other than excludeID already holds
// the username. excludeID 0 means "no exclusion" (registration path).
func (s *PgMemberStore) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM members WHERE username = $1 AND id <> $2)`
	if err := s.db.QueryRow(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PgMemberStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM members WHERE email = $1 AND id <> $2)`
	if err := s.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// PgTokenStore is the PostgreSQL-backed TokenStore.
type PgTokenStore struct {
	db *pgxpool.Pool
}

// NewTokenStore creates a TokenStore over the given pool.
func NewTokenStore(db *pgxpool.Pool) *PgTokenStore {
	return &PgTokenStore{db: db}
}

func (s *PgTokenStore) InsertToken(ctx context.Context, memberID int64, token string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO auth_tokens (member_id, token) VALUES ($1, $2)`, memberID, token)
	return err
}

func (s *PgTokenStore) GetByToken(ctx context.Context, token string) (*Member, *AuthToken, error) {
	query := `
		SELECT m.id, m.username, m.email, m.password, m.created_at,
		       t.id, t.member_id, t.token, t.created_at
		FROM auth_tokens t
		JOIN members m ON m.id = t.member_id
		WHERE t.token = $1
	`
	var member Member
	var record AuthToken
	err := s.db.QueryRow(ctx, query, token).Scan(
		&member.ID, &member.Username, &member.Email, &member.HashedPassword, &member.CreatedAt,
		&record.ID, &record.MemberID, &record.Token, &record.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &member, &record, nil
}

func (s *PgTokenStore) DeleteToken(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE token = $1`, token)
	return err
}
