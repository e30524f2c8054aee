package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/config"
)

// fakeMemberStore is an in-memory MemberStore honoring the interface
// contract: pgx.ErrNoRows on missed lookups, createErr surfaced unchanged.
type fakeMemberStore struct {
	members   []*Member
	nextID    int64
	createErr error
}

func (f *fakeMemberStore) CreateMember(_ context.Context, member *Member) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	member.ID = f.nextID
	member.CreatedAt = time.Now()
	stored := *member
	f.members = append(f.members, &stored)
	return nil
}

func (f *fakeMemberStore) GetMemberByUsername(_ context.Context, username string) (*Member, error) {
	for _, m := range f.members {
		if m.Username == username {
			found := *m
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberStore) UsernameExists(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, m := range f.members {
		if m.Username == username && m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberStore) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, m := range f.members {
		if m.Email == email && m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthService(store *fakeMemberStore) *AuthService {
	return NewAuthService(store, config.AuthConfig{BcryptCost: bcrypt.MinCost})
}

func TestRegisterThenDuplicateUsername(t *testing.T) {
	req := require.New(t)
	store := &fakeMemberStore{}
	svc := newTestAuthService(store)
	ctx := context.Background()

	member, err := svc.Register(ctx, validRegisterRequest())
	req.NoError(err)
	req.NotZero(member.ID)
	req.False(member.CreatedAt.IsZero())
	req.True(CheckPassword("strongpassword123", member.HashedPassword))

	// Same username again, different email.
	second := validRegisterRequest()
	second.Email = "other@example.com"
	_, err = svc.Register(ctx, second)
	req.Error(err)

	appErr, ok := apperror.FromError(err)
	req.True(ok)
	req.True(apperror.IsValidationError(appErr))
	req.Equal(usernameTakenMessage, appErr.Fields["username"])
	req.Len(store.members, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	req := require.New(t)
	store := &fakeMemberStore{}
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	req.NoError(err)

	second := validRegisterRequest()
	second.Username = "otheruser"
	_, err = svc.Register(ctx, second)

	appErr, ok := apperror.FromError(err)
	req.True(ok)
	req.Equal(emailTakenMessage, appErr.Fields["email"])
}

func TestRegisterUniqueRaceMapsToFieldError(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantField  string
	}{
		{"username constraint", "members_username_key", "username"},
		{"email constraint", "members_email_key", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			// The availability checks pass (empty store), then the insert
			// loses the race and hits the unique constraint.
			store := &fakeMemberStore{
				createErr: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tt.constraint},
			}
			svc := newTestAuthService(store)

			_, err := svc.Register(context.Background(), validRegisterRequest())
			appErr, ok := apperror.FromError(err)
			req.True(ok)
			req.True(apperror.IsValidationError(appErr))
			req.Contains(appErr.Fields, tt.wantField)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	req := require.New(t)
	store := &fakeMemberStore{}
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	req.NoError(err)

	member, err := svc.Login(ctx, LoginRequest{Username: "newuser", Password: "strongpassword123"})
	req.NoError(err)
	req.Equal("newuser", member.Username)
	req.Equal("user@example.com", member.Email)
}

func TestLoginFailurePayloadsAreIdentical(t *testing.T) {
	req := require.New(t)
	store := &fakeMemberStore{}
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	req.NoError(err)

	_, wrongPasswordErr := svc.Login(ctx, LoginRequest{Username: "newuser", Password: "not-the-password"})
	_, unknownUserErr := svc.Login(ctx, LoginRequest{Username: "nosuchuser", Password: "strongpassword123"})

	wrongPassword, ok := apperror.FromError(wrongPasswordErr)
	req.True(ok)
	unknownUser, ok := apperror.FromError(unknownUserErr)
	req.True(ok)

	// Wrong password and unknown username must be indistinguishable.
	req.Equal(wrongPassword.StatusCode(), unknownUser.StatusCode())
	req.Equal(wrongPassword.ToResponse(), unknownUser.ToResponse())
}

func TestLoginBlankFields(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		wantFields []string
	}{
		{"both blank", LoginRequest{}, []string{"username", "password"}},
		{"blank password", LoginRequest{Username: "newuser"}, []string{"password"}},
		{"blank username", LoginRequest{Password: "strongpassword123"}, []string{"username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			svc := newTestAuthService(&fakeMemberStore{})

			_, err := svc.Login(context.Background(), tt.req)
			appErr, ok := apperror.FromError(err)
			req.True(ok)
			req.True(apperror.IsValidationError(appErr))
			req.Len(appErr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				req.Equal(requiredMessage, appErr.Fields[field])
			}
		})
	}
}
