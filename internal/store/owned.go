package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound covers both "no such record" and "record belongs to someone
// else" — callers must not be able to tell the two apart.
var ErrNotFound = errors.New("record not found")

// Owned is an ownership-scoped collection of T. T must have a user_id column;
// every lookup filters by record id and owner id jointly, so a record id on
// its own never grants access.
type Owned[T any] struct {
	db    *gorm.DB
	order string
}

// NewOwned builds a store ordering List results by the given clause
// (e.g. "created_at DESC").
func NewOwned[T any](db *gorm.DB, order string) *Owned[T] {
	return &Owned[T]{db: db, order: order}
}

func (s *Owned[T]) List(ownerID uint) ([]T, error) {
	items := []T{}

	if err := s.db.Where("user_id = ?", ownerID).Order(s.order).Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Owned[T]) Create(item *T) error {
	return s.db.Create(item).Error
}

func (s *Owned[T]) Find(ownerID, id uint) (*T, error) {
	var item T

	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (s *Owned[T]) Save(item *T) error {
	return s.db.Save(item).Error
}

func (s *Owned[T]) Delete(ownerID, id uint) error {
	var item T

	res := s.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&item)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
