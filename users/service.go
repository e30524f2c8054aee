// Package users covers member profile management: reading the authenticated
// member's account and partially updating username/email.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
)

const (
	pgUniqueViolation = "23505"

	usernameTakenMessage = "user with this username already exists"
	emailTakenMessage    = "user with this email already exists"
)

// UserService provides member profile operations.
type UserService struct {
	store ProfileStore
}

// NewUserService creates a new UserService.
func NewUserService(store ProfileStore) *UserService {
	return &UserService{store: store}
}

// GetProfile retrieves a member by ID.
func (s *UserService) GetProfile(ctx context.Context, memberID int64) (*auth.Member, error) {
	member, err := s.store.GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("member with ID %d not found", memberID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}
	return member, nil
}

// UpdateProfile applies a partial update to the member's username and/or
// email. Provided fields are validated and checked for uniqueness against
// every other member; absent fields are left untouched. As with
// registration, the unique constraints are the final arbiter and a lost
// race surfaces as the same per-field validation error.
func (s *UserService) UpdateProfile(ctx context.Context, member *auth.Member, req *UpdateProfileRequest) (*auth.Member, error) {
	if err := auth.Validate.Struct(req); err != nil {
		if fields := auth.FieldErrors(err); fields != nil {
			return nil, apperror.NewFieldValidationError(fields)
		}
		return nil, apperror.NewBadRequestError("invalid profile payload", err)
	}

	fields := make(map[string]string)
	if req.Username != nil {
		taken, err := s.store.UsernameTakenByOther(ctx, *req.Username, member.ID)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to check username availability", err)
		}
		if taken {
			fields["username"] = usernameTakenMessage
		}
	}
	if req.Email != nil {
		taken, err := s.store.EmailTakenByOther(ctx, *req.Email, member.ID)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to check email availability", err)
		}
		if taken {
			fields["email"] = emailTakenMessage
		}
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError(fields)
	}

	updated, err := s.store.UpdateMember(ctx, member.ID, req.Username, req.Email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewFieldValidationError(map[string]string{"username": usernameTakenMessage})
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewFieldValidationError(map[string]string{"email": emailTakenMessage})
			}
		}
		return nil, apperror.NewDatabaseError("failed to update profile", err)
	}
	return updated, nil
}
