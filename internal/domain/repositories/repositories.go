// Package repositories declares the persistence contracts consumed by the
// application layer. Implementations live under internal/infrastructure.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/domain/entities"
)

// UserRepository owns User persistence. Find methods return (nil, nil) when
// no record matches so callers can distinguish absence from storage failure.
type UserRepository interface {
	// Create inserts a new user. The email-uniqueness check and insert are
	// atomic with respect to concurrent registrations: the loser of a race on
	// the same email gets apperrors.ErrDuplicateEmail.
	Create(ctx context.Context, user *entities.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindByResetToken matches a user whose pending reset token equals token
	// and whose expiry is still after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*entities.User, error)

	// UpdateAtomic applies mutate to the freshest committed state of the row
	// as a single atomic read-modify-write, so concurrent mutations of one
	// user (token add/remove, password change) cannot lose updates. It
	// returns apperrors.ErrNotFound if the row is gone and aborts without
	// writing if mutate returns an error.
	UpdateAtomic(ctx context.Context, id uuid.UUID, mutate func(*entities.User) error) (*entities.User, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	CreateBatch(ctx context.Context, categories []*entities.Category) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Category, error)
}

// TransactionFilter bounds and orders a transaction listing. Zero From/To
// mean no bound on that side; SortBy must be one of the columns the
// repository implementation allows.
type TransactionFilter struct {
	From      time.Time
	To        time.Time
	SortBy    string
	SortOrder string
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entities.Transaction) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) ([]*entities.Transaction, error)
}
