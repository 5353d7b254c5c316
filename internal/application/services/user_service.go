package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

// ProfileUpdate carries the statically declared set of editable profile
// fields. A nil field is untouched; anything outside this set is rejected at
// the boundary before the update is attempted.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// UserService covers the authenticated user's own record: read, edit, delete.
type UserService struct {
	users    repositories.UserRepository
	sessions *SessionRegistry
}

func NewUserService(users repositories.UserRepository, sessions *SessionRegistry) *UserService {
	return &UserService{users: users, sessions: sessions}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies the requested fields as one atomic update. Any field
// failing validation aborts the whole edit; nothing is partially applied.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*entities.User, error) {
	return s.users.UpdateAtomic(ctx, userID, func(u *entities.User) error {
		if update.FirstName != nil {
			u.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			u.LastName = *update.LastName
		}
		if update.Email != nil {
			normalized, err := entities.NormalizeEmail(*update.Email)
			if err != nil {
				return err
			}
			u.Email = normalized
		}
		if update.Password != nil {
			if err := u.SetPassword(*update.Password); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAccount removes the user record. Identity resolution fails for every
// outstanding session token once the row is gone; the cache purge keeps the
// fast path consistent with that.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, err
	}
	s.sessions.PurgeCache(ctx, userID)
	return user, nil
}
