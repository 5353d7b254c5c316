package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/apperrors"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Category struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"transactionType"`
	OwnerID   uuid.UUID       `json:"owner"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCategory(name string, transactionType TransactionType, ownerID uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("category name must not be empty")
	}
	if !transactionType.Valid() {
		return nil, apperrors.NewValidation("transaction type must be Income or Expense")
	}

	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      transactionType,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StarterCategories is the fixed set seeded for accounts created through an
// external provider, once per account.
func StarterCategories(ownerID uuid.UUID) []*Category {
	seed := []struct {
		name string
		kind TransactionType
	}{
		{"salary", TransactionTypeIncome},
		{"business", TransactionTypeIncome},
		{"gift", TransactionTypeIncome},
		{"bills", TransactionTypeExpense},
		{"dinner", TransactionTypeExpense},
		{"leisure", TransactionTypeExpense},
	}

	now := time.Now()
	categories := make([]*Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, &Category{
			ID:        uuid.New(),
			Name:      s.name,
			Type:      s.kind,
			OwnerID:   ownerID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return categories
}
