package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Records is a gorm-backed store for one owner-scoped record family
// (expenses or incomes). The same record may be written concurrently by two
// requests; row-level last-write-wins is accepted.
type Records[T any] struct {
	db *gorm.DB
}

func NewRecords[T any](db *gorm.DB) *Records[T] {
	return &Records[T]{db: db}
}

// List returns all of ownerID's records, most recent date first, with the
// category reference resolved.
func (s *Records[T]) List(ctx context.Context, ownerID uint) ([]T, error) {
	var items []T
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", ownerID).
		Order("date DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns ownerID's record with the given id, or ErrNotFound when it
// does not exist or is owned by someone else.
func (s *Records[T]) Get(ctx context.Context, ownerID, id uint) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a new record. The caller has already validated it and
// assigned the owner.
func (s *Records[T]) Create(ctx context.Context, rec *T) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// Save persists a mutated record previously loaded with Get.
func (s *Records[T]) Save(ctx context.Context, rec *T) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

// Delete removes ownerID's record with the given id. Deleting a foreign or
// missing id returns ErrNotFound either way.
func (s *Records[T]) Delete(ctx context.Context, ownerID, id uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
