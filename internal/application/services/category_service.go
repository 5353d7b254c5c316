package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

type CategoryService struct {
	categories repositories.CategoryRepository
}

func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, ownerID uuid.UUID, name string, transactionType entities.TransactionType) (*entities.Category, error) {
	category, err := entities.NewCategory(name, transactionType, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Category, error) {
	return s.categories.FindByOwner(ctx, ownerID)
}
