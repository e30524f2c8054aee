package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/groupchat-go/apperror"
)

// tokenBytes is the number of random bytes per session token. 32 bytes give
// 256 bits of entropy, hex-encoded to a 64 character string.
const tokenBytes = 32

// TokenService issues, resolves and revokes opaque session tokens. Tokens
// live in the auth_tokens table under a unique index, so resolution is a
// single indexed lookup.
type TokenService struct {
	store TokenStore
}

// NewTokenService creates a new TokenService.
func NewTokenService(store TokenStore) *TokenService {
	return &TokenService{store: store}
}

// generateToken draws tokenBytes from the OS CSPRNG and hex-encodes them.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates and persists a fresh session token for the member. The raw
// token is returned exactly once; afterwards it only exists as a row the
// middleware can resolve.
func (s *TokenService) Issue(ctx context.Context, member *Member) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", apperror.NewInternalError("failed to generate token", err)
	}

	if err := s.store.InsertToken(ctx, member.ID, token); err != nil {
		return "", apperror.NewDatabaseError("failed to store token", err)
	}
	return token, nil
}

// Resolve looks up a presented token and returns the owning member together
// with the token record. A miss is an authentication failure, never a retry.
func (s *TokenService) Resolve(ctx context.Context, token string) (*Member, *AuthToken, error) {
	member, record, err := s.store.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperror.NewAuthError("invalid token", nil)
		}
		return nil, nil, apperror.NewDatabaseError("failed to resolve token", err)
	}
	return member, record, nil
}

// Revoke deletes the token record. Revoking a token that is already gone is
// a no-op: only an already-resolved token reaches this call.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.store.DeleteToken(ctx, token); err != nil {
		return apperror.NewDatabaseError("failed to revoke token", err)
	}
	return nil
}
