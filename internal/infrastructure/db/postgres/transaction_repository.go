package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

// sortableColumns closes the set of columns a client may order by; anything
// else falls back to the default ordering.
var sortableColumns = map[string]string{
	"transactionDate": "transaction_date",
	"name":            "name",
	"amount":          "amount",
	"createdAt":       "created_at",
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repositories.TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Create(transactionModelFromEntity(transaction)).Error
}

func (r *TransactionRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter repositories.TransactionFilter) ([]*entities.Transaction, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if !filter.From.IsZero() {
		q = q.Where("transaction_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("transaction_date <= ?", filter.To)
	}

	// No explicit sort lists newest first; an explicit sort column defaults
	// to ascending unless the client says otherwise.
	column, order := "transaction_date", "desc"
	if c, ok := sortableColumns[filter.SortBy]; ok {
		column, order = c, "asc"
		if strings.EqualFold(filter.SortOrder, "desc") {
			order = "desc"
		}
	}
	q = q.Order(fmt.Sprintf("%s %s", column, order))

	var models []TransactionModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	transactions := make([]*entities.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, models[i].toEntity())
	}
	return transactions, nil
}
