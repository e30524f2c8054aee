package users

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
)

// fakeProfileStore is an in-memory ProfileStore returning pgx.ErrNoRows on
// missed lookups, per the interface contract.
type fakeProfileStore struct {
	members map[int64]*auth.Member
}

func newFakeProfileStore(members ...*auth.Member) *fakeProfileStore {
	store := &fakeProfileStore{members: make(map[int64]*auth.Member)}
	for _, m := range members {
		stored := *m
		store.members[m.ID] = &stored
	}
	return store
}

func (f *fakeProfileStore) GetMemberByID(_ context.Context, memberID int64) (*auth.Member, error) {
	member, ok := f.members[memberID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *member
	return &found, nil
}

func (f *fakeProfileStore) UpdateMember(_ context.Context, memberID int64, username, email *string) (*auth.Member, error) {
	member, ok := f.members[memberID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if username != nil {
		member.Username = *username
	}
	if email != nil {
		member.Email = *email
	}
	updated := *member
	return &updated, nil
}

func (f *fakeProfileStore) UsernameTakenByOther(_ context.Context, username string, selfID int64) (bool, error) {
	for id, m := range f.members {
		if m.Username == username && id != selfID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileStore) EmailTakenByOther(_ context.Context, email string, selfID int64) (bool, error) {
	for id, m := range f.members {
		if m.Email == email && id != selfID {
			return true, nil
		}
	}
	return false, nil
}

func testMember() *auth.Member {
	return &auth.Member{ID: 1, Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()}
}

func TestUpdateProfilePartial(t *testing.T) {
	t.Run("email only leaves username unchanged", func(t *testing.T) {
		req := require.New(t)
		member := testMember()
		svc := NewUserService(newFakeProfileStore(member))

		updated, err := svc.UpdateProfile(context.Background(), member, &UpdateProfileRequest{
			Email: strptr("new@example.com"),
		})
		req.NoError(err)
		req.Equal("alice", updated.Username)
		req.Equal("new@example.com", updated.Email)
	})

	t.Run("username only leaves email unchanged", func(t *testing.T) {
		req := require.New(t)
		member := testMember()
		svc := NewUserService(newFakeProfileStore(member))

		updated, err := svc.UpdateProfile(context.Background(), member, &UpdateProfileRequest{
			Username: strptr("alice2"),
		})
		req.NoError(err)
		req.Equal("alice2", updated.Username)
		req.Equal("alice@example.com", updated.Email)
	})

	t.Run("empty update returns current profile", func(t *testing.T) {
		req := require.New(t)
		member := testMember()
		svc := NewUserService(newFakeProfileStore(member))

		updated, err := svc.UpdateProfile(context.Background(), member, &UpdateProfileRequest{})
		req.NoError(err)
		req.Equal("alice", updated.Username)
		req.Equal("alice@example.com", updated.Email)
	})
}

func TestUpdateProfileTakenByOther(t *testing.T) {
	req := require.New(t)
	alice := testMember()
	bob := &auth.Member{ID: 2, Username: "bob", Email: "bob@example.com"}
	svc := NewUserService(newFakeProfileStore(alice, bob))

	_, err := svc.UpdateProfile(context.Background(), alice, &UpdateProfileRequest{
		Username: strptr("bob"),
	})
	appErr, ok := apperror.FromError(err)
	req.True(ok)
	req.True(apperror.IsValidationError(appErr))
	req.Equal(usernameTakenMessage, appErr.Fields["username"])

	// Keeping your own current values is never a conflict.
	_, err = svc.UpdateProfile(context.Background(), alice, &UpdateProfileRequest{
		Username: strptr("alice"),
		Email:    strptr("alice@example.com"),
	})
	req.NoError(err)
}

func TestGetProfileNotFound(t *testing.T) {
	req := require.New(t)
	svc := NewUserService(newFakeProfileStore())

	_, err := svc.GetProfile(context.Background(), 42)
	req.Error(err)
	req.True(apperror.IsNotFound(err))
}
