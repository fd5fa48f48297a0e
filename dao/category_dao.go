package dao

import (
	"context"

	"notekeeper/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoriesPerPage is the fixed page size for category listings.
const CategoriesPerPage = 8

type CategoryDAO struct {
	db *gorm.DB
}

// NewCategoryDAO 创建一个新的 CategoryDAO 实例
func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{db: db}
}

// Transaction runs fn inside one database transaction so an ownership check
// and the mutation that follows it stay atomic with respect to other
// requests touching the same row.
func (dao *CategoryDAO) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return dao.db.WithContext(ctx).Transaction(fn)
}

// Create 创建分类
func (dao *CategoryDAO) Create(ctx context.Context, category *model.Category) error {
	return dao.db.WithContext(ctx).Create(category).Error
}

// GetByID 根据主键获取分类
func (dao *CategoryDAO) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	err := dao.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetLocked fetches one row under SELECT ... FOR UPDATE inside tx.
func (dao *CategoryDAO) GetLocked(tx *gorm.DB, id uint64) (*model.Category, error) {
	var category model.Category
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByOwner returns one page of the owner's categories in insertion order.
func (dao *CategoryDAO) ListByOwner(ctx context.Context, ownerID uint64, page int) (Page[model.Category], error) {
	var total int64
	err := dao.db.WithContext(ctx).Model(&model.Category{}).
		Where("user_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return Page[model.Category]{}, err
	}
	var items []model.Category
	err = dao.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Limit(CategoriesPerPage).
		Offset(pageOffset(page, CategoriesPerPage)).
		Find(&items).Error
	if err != nil {
		return Page[model.Category]{}, err
	}
	return newPage(items, page, CategoriesPerPage, total), nil
}

// AllByOwner returns every category the owner has, for select widgets and
// the landing page.
func (dao *CategoryDAO) AllByOwner(ctx context.Context, ownerID uint64) ([]model.Category, error) {
	var items []model.Category
	err := dao.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&items).Error
	return items, err
}

// CountNotes counts the notes still referencing a category, used by the
// delete guard. Runs inside the caller's transaction.
func (dao *CategoryDAO) CountNotes(tx *gorm.DB, categoryID uint64) (int64, error) {
	var n int64
	err := tx.Model(&model.Note{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}
