package service

import (
	"context"
	"errors"

	"notekeeper/dao"
	"notekeeper/internal/apperr"
	"notekeeper/model"

	"gorm.io/gorm"
)

// CategoryService performs the owner-scoped CRUD over categories. Every
// operation takes the requesting owner explicitly; nothing is read from
// ambient state.
type CategoryService struct {
	dao *dao.CategoryDAO
}

// NewCategoryService 创建一个新的 CategoryService 实例
func NewCategoryService(dao *dao.CategoryDAO) *CategoryService {
	return &CategoryService{dao: dao}
}

// List returns one page of the owner's categories.
func (s *CategoryService) List(ctx context.Context, ownerID uint64, page int) (dao.Page[model.Category], error) {
	return s.dao.ListByOwner(ctx, ownerID, page)
}

// All returns every category the owner has.
func (s *CategoryService) All(ctx context.Context, ownerID uint64) ([]model.Category, error) {
	return s.dao.AllByOwner(ctx, ownerID)
}

// Create stamps the owner id server-side and persists the category.
func (s *CategoryService) Create(ctx context.Context, ownerID uint64, description string) (*model.Category, error) {
	category := &model.Category{UserID: ownerID, Description: description}
	if err := s.dao.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get fetches a category and enforces ownership. A missing row and a row
// owned by someone else are distinct outcomes.
func (s *CategoryService) Get(ctx context.Context, id, ownerID uint64) (*model.Category, error) {
	category, err := s.dao.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.UserID != ownerID {
		return nil, apperr.ErrForbidden
	}
	return category, nil
}

// Update re-checks ownership under a row lock and applies the new
// description in the same transaction, so the check cannot go stale.
func (s *CategoryService) Update(ctx context.Context, id, ownerID uint64, description string) error {
	return s.dao.Transaction(ctx, func(tx *gorm.DB) error {
		category, err := s.dao.GetLocked(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		if category.UserID != ownerID {
			return apperr.ErrForbidden
		}
		category.Description = description
		return tx.Save(category).Error
	})
}

// Delete removes the category after the ownership check. Deleting a
// category that notes still reference is blocked with a conflict instead of
// orphaning the references.
func (s *CategoryService) Delete(ctx context.Context, id, ownerID uint64) error {
	return s.dao.Transaction(ctx, func(tx *gorm.DB) error {
		category, err := s.dao.GetLocked(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		if category.UserID != ownerID {
			return apperr.ErrForbidden
		}
		n, err := s.dao.CountNotes(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Wrap(apperr.ErrConflict, "category still has notes")
		}
		return tx.Delete(category).Error
	})
}
