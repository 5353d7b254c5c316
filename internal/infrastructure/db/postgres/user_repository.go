package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	err := r.db.WithContext(ctx).Create(userModelFromEntity(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*entities.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.findOne(ctx, "reset_password_token = ? AND reset_password_expiry > ?", token, now)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.toEntity(), nil
}

// UpdateAtomic re-reads the row under a transaction, applies mutate and
// writes the result back, so concurrent mutations of one user serialize
// instead of losing updates through stale read-modify-writes.
func (r *UserRepository) UpdateAtomic(ctx context.Context, id uuid.UUID, mutate func(*entities.User) error) (*entities.User, error) {
	var updated *entities.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite serializes writers on its own and rejects FOR UPDATE syntax;
		// the row lock is only meaningful on postgres.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var model UserModel
		if err := q.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		user := model.toEntity()
		if err := mutate(user); err != nil {
			return err
		}
		user.UpdatedAt = time.Now()

		if err := tx.Save(userModelFromEntity(user)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateEmail
			}
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id).Error
}
