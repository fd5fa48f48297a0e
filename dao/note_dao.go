package dao

import (
	"context"
	"strings"

	"notekeeper/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotesPerPage is the fixed page size for note listings.
const NotesPerPage = 3

// NoteFilter narrows a note listing. Both fields are optional and combine
// independently; the zero value lists the whole owner scope.
type NoteFilter struct {
	CategoryID  uint64 // exact match when non-zero
	Description string // case-insensitive substring when non-empty
}

type NoteDAO struct {
	db *gorm.DB
}

// NewNoteDAO 创建一个新的 NoteDAO 实例
func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{db: db}
}

// Transaction runs fn inside one database transaction.
func (dao *NoteDAO) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return dao.db.WithContext(ctx).Transaction(fn)
}

// Create 创建笔记
func (dao *NoteDAO) Create(ctx context.Context, note *model.Note) error {
	return dao.db.WithContext(ctx).Create(note).Error
}

// GetByID 根据主键获取笔记（带分类预加载）
func (dao *NoteDAO) GetByID(ctx context.Context, id uint64) (*model.Note, error) {
	var note model.Note
	err := dao.db.WithContext(ctx).Preload("Category").First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetLocked fetches one row under SELECT ... FOR UPDATE inside tx.
func (dao *NoteDAO) GetLocked(tx *gorm.DB, id uint64) (*model.Note, error) {
	var note model.Note
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByOwner returns one page of the owner's notes matching the filter.
// Every branch keeps the user_id predicate so filter input can never widen
// the scope to another owner's rows.
func (dao *NoteDAO) ListByOwner(ctx context.Context, ownerID uint64, filter NoteFilter, page int) (Page[model.Note], error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if filter.CategoryID != 0 {
			q = q.Where("category_id = ?", filter.CategoryID)
		}
		if filter.Description != "" {
			q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Description)+"%")
		}
		return q
	}

	var total int64
	if err := scope(dao.db.WithContext(ctx).Model(&model.Note{})).Count(&total).Error; err != nil {
		return Page[model.Note]{}, err
	}
	var items []model.Note
	err := scope(dao.db.WithContext(ctx)).
		Preload("Category").
		Order("id").
		Limit(NotesPerPage).
		Offset(pageOffset(page, NotesPerPage)).
		Find(&items).Error
	if err != nil {
		return Page[model.Note]{}, err
	}
	return newPage(items, page, NotesPerPage, total), nil
}
