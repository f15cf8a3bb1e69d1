package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[string]*model.User)}
	for _, u := range users {
		f.users[u.Email] = u
	}
	return f
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, email, name, phone, photoURL string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	if photoURL != "" {
		u.PhotoURL = photoURL
	}
	return u, nil
}

func (f *fakeUserStore) Delete(_ context.Context, email string) (int64, error) {
	if _, ok := f.users[email]; !ok {
		return 0, nil
	}
	delete(f.users, email)
	return 1, nil
}

type fakeMirrorStore struct {
	mirrored int
	err      error
}

func (f *fakeMirrorStore) MirrorProfile(_ context.Context, _, _, _, _ string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mirrored++
	return 1, nil
}

func TestUpdateProfileMirrorsOntoStudent(t *testing.T) {
	store := newFakeUserStore(&model.User{Email: "s@example.com", Name: "Old", Role: model.RoleStudent})
	mirror := &fakeMirrorStore{}
	svc := NewUserService(store, mirror, &fakeProvider{}, zerolog.Nop())

	user, err := svc.UpdateProfile(context.Background(), "s@example.com",
		&model.UpdateProfileRequest{Name: "New Name"})
	require.NoError(t, err)

	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, 1, mirror.mirrored)
}

func TestUpdateProfileMirrorFailureIsNotFatal(t *testing.T) {
	store := newFakeUserStore(&model.User{Email: "s@example.com", Name: "Old"})
	mirror := &fakeMirrorStore{err: errors.New("student table unavailable")}
	svc := NewUserService(store, mirror, &fakeProvider{}, zerolog.Nop())

	user, err := svc.UpdateProfile(context.Background(), "s@example.com",
		&model.UpdateProfileRequest{Name: "New Name"})

	require.NoError(t, err, "mirror failures must not fail the profile update")
	assert.Equal(t, "New Name", user.Name)
}

func TestUpdateProfileEmptyRequestSkipsMirror(t *testing.T) {
	store := newFakeUserStore(&model.User{Email: "s@example.com", Name: "Old"})
	mirror := &fakeMirrorStore{}
	svc := NewUserService(store, mirror, &fakeProvider{}, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), "s@example.com", &model.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Zero(t, mirror.mirrored)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeMirrorStore{}, &fakeProvider{}, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), "ghost@example.com",
		&model.UpdateProfileRequest{Name: "Someone"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesLocalAndProviderAccount(t *testing.T) {
	store := newFakeUserStore(&model.User{Email: "x@example.com"})
	provider := &fakeProvider{}
	svc := NewUserService(store, &fakeMirrorStore{}, provider, zerolog.Nop())

	require.NoError(t, svc.Delete(context.Background(), "x@example.com"))
	assert.Empty(t, store.users)
	assert.Equal(t, []string{"x@example.com"}, provider.deleted)
}

func TestDeleteProviderFailureKeepsLocalDeletion(t *testing.T) {
	store := newFakeUserStore(&model.User{Email: "x@example.com"})
	provider := &fakeProvider{deleteErr: errors.New("provider unreachable")}
	svc := NewUserService(store, &fakeMirrorStore{}, provider, zerolog.Nop())

	err := svc.Delete(context.Background(), "x@example.com")
	require.NoError(t, err, "provider failure must not roll back the local deletion")
	assert.Empty(t, store.users)
}

func TestDeleteMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeMirrorStore{}, &fakeProvider{}, zerolog.Nop())

	err := svc.Delete(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeMirrorStore{}, &fakeProvider{}, zerolog.Nop())

	_, err := svc.Get(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
