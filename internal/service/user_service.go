package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/identity"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// UserStore is the identity storage the user service operates on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, email, name, phone, photoURL string) (*model.User, error)
	Delete(ctx context.Context, email string) (int64, error)
}

// MirrorStore is the slice of student storage the profile mirror writes.
type MirrorStore interface {
	MirrorProfile(ctx context.Context, email, name, phone, photoURL string) (int64, error)
}

// UserService handles identity-record CRUD and the best-effort profile
// mirror onto enrolled-student records.
type UserService struct {
	users    UserStore
	students MirrorStore
	provider identity.Provider
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, students MirrorStore, provider identity.Provider, log zerolog.Logger) *UserService {
	return &UserService{users: users, students: students, provider: provider, log: log}
}

// Get retrieves a user by email.
func (s *UserService) Get(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
		}
		return nil, err
	}
	return user, nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile applies a partial profile update and mirrors the touched
// fields onto the matching student record if one exists. The mirror is
// best-effort: a failure is logged and does not fail the update.
func (s *UserService) UpdateProfile(ctx context.Context, email string, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.users.UpdateProfile(ctx, email, req.Name, req.Phone, req.PhotoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if req.Name != "" || req.Phone != "" || req.PhotoURL != "" {
		if _, err := s.students.MirrorProfile(ctx, email, req.Name, req.Phone, req.PhotoURL); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("Profile mirror onto student record failed")
		}
	}

	return user, nil
}

// Delete removes the user record and asks the identity provider to drop
// the account. A provider failure is logged but does not roll back the
// already-successful local deletion.
func (s *UserService) Delete(ctx context.Context, email string) error {
	deleted, err := s.users.Delete(ctx, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}

	if err := s.provider.DeleteAccount(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("Identity provider account deletion failed")
	}

	s.log.Info().Str("email", email).Msg("User deleted")
	return nil
}
