package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

type TransactionInput struct {
	Date        time.Time
	Name        string
	Amount      float64
	Description string
	CategoryIDs []uuid.UUID
}

type TransactionService struct {
	transactions repositories.TransactionRepository
	now          func() time.Time
}

func NewTransactionService(transactions repositories.TransactionRepository) *TransactionService {
	return &TransactionService{transactions: transactions, now: time.Now}
}

func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, input TransactionInput) (*entities.Transaction, error) {
	transaction, err := entities.NewTransaction(input.Date, input.Name, input.Amount, input.Description, input.CategoryIDs, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.transactions.Create(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// List returns the owner's transactions for the requested date range,
// defaulting to the current calendar month when no range is given.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, filter repositories.TransactionFilter) ([]*entities.Transaction, error) {
	if filter.From.IsZero() && filter.To.IsZero() {
		now := s.now()
		filter.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// The repository's upper bound is inclusive; back off the first
		// instant of the next month so it lands in the next window.
		filter.To = filter.From.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return s.transactions.FindByOwner(ctx, ownerID, filter)
}
