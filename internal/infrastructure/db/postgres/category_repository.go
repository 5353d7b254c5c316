package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(categoryModelFromEntity(category)).Error
}

func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []*entities.Category) error {
	if len(categories) == 0 {
		return nil
	}
	models := make([]*CategoryModel, 0, len(categories))
	for _, c := range categories {
		models = append(models, categoryModelFromEntity(c))
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *CategoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	categories := make([]*entities.Category, 0, len(models))
	for i := range models {
		categories = append(categories, models[i].toEntity())
	}
	return categories, nil
}
