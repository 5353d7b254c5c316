package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/apperrors"
)

type Transaction struct {
	ID          uuid.UUID   `json:"id"`
	Date        time.Time   `json:"transactionDate"`
	Name        string      `json:"name"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	CategoryIDs []uuid.UUID `json:"categories"`
	OwnerID     uuid.UUID   `json:"owner"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewTransaction(date time.Time, name string, amount float64, description string, categoryIDs []uuid.UUID, ownerID uuid.UUID) (*Transaction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("transaction name must not be empty")
	}
	if date.IsZero() {
		return nil, apperrors.NewValidation("transaction date must be set")
	}

	now := time.Now()
	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Name:        name,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		CategoryIDs: categoryIDs,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
