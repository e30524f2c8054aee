// Package auth is responsible for handling authentication and authorization:
// member registration, login, opaque session token lifecycle, and the bearer
// token middleware protecting the rest of the API.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/config"
)

const (
	// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
	pgUniqueViolation = "23505"

	usernameTakenMessage = "user with this username already exists"
	emailTakenMessage    = "user with this email already exists"

	// invalidCredentialsMessage is shared by the unknown-username and
	// wrong-password paths. Keeping them identical is an information-hiding
	// policy: a failed login must not reveal which half was wrong.
	invalidCredentialsMessage = "Invalid username or password"
)

// AuthService provides member registration and login.
type AuthService struct {
	store      MemberStore
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(store MemberStore, authConfig config.AuthConfig) *AuthService {
	return &AuthService{store: store, authConfig: authConfig}
}

// Register validates the request and creates a new member.
//
// Uniqueness is checked twice: first against the current store state so the
// client gets a per-field message, then again by the database constraints at
// insert time. The second check is the real guard; two concurrent
// registrations can both pass the first one, and the losing insert is mapped
// back to the same per-field validation error instead of a 500.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	if err := Validate.Struct(req); err != nil {
		if fields := FieldErrors(err); fields != nil {
			return nil, apperror.NewFieldValidationError(fields)
		}
		return nil, apperror.NewBadRequestError("invalid registration payload", err)
	}

	fields := make(map[string]string)
	taken, err := s.store.UsernameExists(ctx, req.Username, 0)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check username availability", err)
	}
	if taken {
		fields["username"] = usernameTakenMessage
	}
	taken, err = s.store.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check email availability", err)
	}
	if taken {
		fields["email"] = emailTakenMessage
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError(fields)
	}

	hashed, err := HashPassword(req.Password, s.authConfig.BcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	member := &Member{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Lost the check-then-insert race; report it exactly like the
			// availability check would have.
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewFieldValidationError(map[string]string{"username": usernameTakenMessage})
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewFieldValidationError(map[string]string{"email": emailTakenMessage})
			}
		}
		return nil, apperror.NewDatabaseError("failed to create member", err)
	}
	return member, nil
}

// Login authenticates a member by username and password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Member, error) {
	fields := make(map[string]string)
	if req.Username == "" {
		fields["username"] = requiredMessage
	}
	if req.Password == "" {
		fields["password"] = requiredMessage
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError(fields)
	}

	member, err := s.store.GetMemberByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewCredentialsError(invalidCredentialsMessage)
		}
		log.Printf("database error looking up member %q: %v", req.Username, err)
		return nil, apperror.NewDatabaseError("failed to look up member", err)
	}

	if !CheckPassword(req.Password, member.HashedPassword) {
		return nil, apperror.NewCredentialsError(invalidCredentialsMessage)
	}
	return member, nil
}
