package store

import (
	"context"
	"errors"

	"contas/models"

	"gorm.io/gorm"
)

// Categories stores the global category taxonomy. Categories are not
// owner-scoped; ordering is left to the presentation layer.
type Categories struct {
	db *gorm.DB
}

func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Categories) Get(ctx context.Context, id uint) (*models.Category, error) {
	var item models.Category
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Categories) Create(ctx context.Context, cat *models.Category) error {
	return s.db.WithContext(ctx).Create(cat).Error
}

func (s *Categories) Save(ctx context.Context, cat *models.Category) error {
	return s.db.WithContext(ctx).Save(cat).Error
}

// Delete removes a category. References from expenses and incomes are
// cleared by the SET NULL constraint; the records themselves survive.
func (s *Categories) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
