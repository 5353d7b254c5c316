package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

// SessionCache is the optional fast path in front of the persisted token set.
// It may answer "active" definitively; any other answer sends the caller to
// the repository.
type SessionCache interface {
	Add(ctx context.Context, userID, token string) error
	Remove(ctx context.Context, userID, token string) error
	RemoveAll(ctx context.Context, userID string) error
	Contains(ctx context.Context, userID, token string) (bool, bool)
}

// SessionRegistry tracks which session tokens are currently honored per user.
// The session_tokens column on the user row is the source of truth; the cache
// is written through and purged before a revocation reports success.
type SessionRegistry struct {
	users repositories.UserRepository
	cache SessionCache
}

func NewSessionRegistry(users repositories.UserRepository, cache SessionCache) *SessionRegistry {
	return &SessionRegistry{users: users, cache: cache}
}

func (r *SessionRegistry) Record(ctx context.Context, userID uuid.UUID, token string) error {
	_, err := r.users.UpdateAtomic(ctx, userID, func(u *entities.User) error {
		u.AddSessionToken(token)
		return nil
	})
	if err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.Add(ctx, userID.String(), token); err != nil {
			log.Printf("session cache add failed for user %s: %v", userID, err)
		}
	}
	return nil
}

// Revoke removes exactly the given token. The cache entry goes first so a
// cached positive cannot outlive the committed removal.
func (r *SessionRegistry) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	if r.cache != nil {
		if err := r.cache.Remove(ctx, userID.String(), token); err != nil {
			log.Printf("session cache remove failed for user %s: %v", userID, err)
		}
	}
	_, err := r.users.UpdateAtomic(ctx, userID, func(u *entities.User) error {
		u.RemoveSessionToken(token)
		return nil
	})
	return err
}

func (r *SessionRegistry) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if r.cache != nil {
		if err := r.cache.RemoveAll(ctx, userID.String()); err != nil {
			log.Printf("session cache purge failed for user %s: %v", userID, err)
		}
	}
	_, err := r.users.UpdateAtomic(ctx, userID, func(u *entities.User) error {
		u.ClearSessionTokens()
		return nil
	})
	return err
}

// IsActive reports whether the token is a currently honored session for the
// user. A cryptographically valid token that is absent here is dead.
//
// A miss falls back to the row but never writes the cache: Record is the only
// cache writer. Warming the cache here would race a concurrent revocation,
// whose purge could land before this write and leave the revoked token cached
// as active until the TTL.
func (r *SessionRegistry) IsActive(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	if r.cache != nil {
		if active, ok := r.cache.Contains(ctx, userID.String(), token); ok && active {
			return true, nil
		}
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.HasSessionToken(token), nil
}

// PurgeCache drops every cached token for the user. Used when the user row
// itself is deleted.
func (r *SessionRegistry) PurgeCache(ctx context.Context, userID uuid.UUID) {
	if r.cache != nil {
		if err := r.cache.RemoveAll(ctx, userID.String()); err != nil {
			log.Printf("session cache purge failed for user %s: %v", userID, err)
		}
	}
}
