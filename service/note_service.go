package service

import (
	"context"
	"errors"
	"io"

	"notekeeper/dao"
	"notekeeper/internal/apperr"
	"notekeeper/internal/picture"
	"notekeeper/model"

	"gorm.io/gorm"
)

// PhotoUpload is a pending image attachment read straight from the request.
type PhotoUpload struct {
	Filename string
	Reader   io.Reader
}

// NoteInput carries the writable note fields. Photo is optional: nil keeps
// the current photo (or the placeholder on create).
type NoteInput struct {
	Description string
	Text        string
	CategoryID  uint64
	Photo       *PhotoUpload
}

// NoteService performs the owner-scoped CRUD over notes, including the
// photo attachment lifecycle.
type NoteService struct {
	dao        *dao.NoteDAO
	categories *dao.CategoryDAO
	pictures   *picture.Store
}

// NewNoteService 创建一个新的 NoteService 实例
func NewNoteService(noteDAO *dao.NoteDAO, categoryDAO *dao.CategoryDAO, pictures *picture.Store) *NoteService {
	return &NoteService{dao: noteDAO, categories: categoryDAO, pictures: pictures}
}

// List returns one page of the owner's notes matching the filter.
func (s *NoteService) List(ctx context.Context, ownerID uint64, filter dao.NoteFilter, page int) (dao.Page[model.Note], error) {
	return s.dao.ListByOwner(ctx, ownerID, filter, page)
}

// Create validates the category reference against the owner, stores the
// photo when one was uploaded, and persists the note with the owner id
// stamped server-side. A stored photo is cleaned up again if the insert
// fails so no orphaned file survives.
func (s *NoteService) Create(ctx context.Context, ownerID uint64, in NoteInput) (*model.Note, error) {
	if err := s.checkCategory(ctx, in.CategoryID, ownerID); err != nil {
		return nil, err
	}

	photo := s.pictures.Placeholder()
	if in.Photo != nil {
		name, err := s.pictures.Save(in.Photo.Filename, in.Photo.Reader)
		if err != nil {
			return nil, err
		}
		photo = name
	}

	note := &model.Note{
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Text:        in.Text,
		Photo:       photo,
	}
	if err := s.dao.Create(ctx, note); err != nil {
		_ = s.pictures.Remove(photo)
		return nil, err
	}
	return note, nil
}

// Get fetches a note and enforces ownership, keeping missing and foreign
// rows distinct.
func (s *NoteService) Get(ctx context.Context, id, ownerID uint64) (*model.Note, error) {
	note, err := s.dao.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if note.UserID != ownerID {
		return nil, apperr.ErrForbidden
	}
	return note, nil
}

// Update re-checks ownership under a row lock and applies the changes in
// the same transaction. When the photo is replaced the previous file is
// removed after the commit; the placeholder is never removed.
func (s *NoteService) Update(ctx context.Context, id, ownerID uint64, in NoteInput) error {
	if err := s.checkCategory(ctx, in.CategoryID, ownerID); err != nil {
		return err
	}

	newPhoto := ""
	if in.Photo != nil {
		name, err := s.pictures.Save(in.Photo.Filename, in.Photo.Reader)
		if err != nil {
			return err
		}
		newPhoto = name
	}

	oldPhoto := ""
	err := s.dao.Transaction(ctx, func(tx *gorm.DB) error {
		note, err := s.dao.GetLocked(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		if note.UserID != ownerID {
			return apperr.ErrForbidden
		}
		note.Description = in.Description
		note.Text = in.Text
		note.CategoryID = in.CategoryID
		if newPhoto != "" {
			oldPhoto = note.Photo
			note.Photo = newPhoto
		}
		return tx.Save(note).Error
	})
	if err != nil {
		_ = s.pictures.Remove(newPhoto)
		return err
	}
	_ = s.pictures.Remove(oldPhoto)
	return nil
}

// Delete removes the note after the ownership check, then removes its photo
// file best effort.
func (s *NoteService) Delete(ctx context.Context, id, ownerID uint64) error {
	photo := ""
	err := s.dao.Transaction(ctx, func(tx *gorm.DB) error {
		note, err := s.dao.GetLocked(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		if note.UserID != ownerID {
			return apperr.ErrForbidden
		}
		photo = note.Photo
		return tx.Delete(note).Error
	})
	if err != nil {
		return err
	}
	_ = s.pictures.Remove(photo)
	return nil
}

// checkCategory rejects notes referencing a category the owner does not
// have. A foreign category reads as validation failure, not forbidden, so a
// probing client learns nothing about other tenants' ids.
func (s *NoteService) checkCategory(ctx context.Context, categoryID, ownerID uint64) error {
	if categoryID == 0 {
		return apperr.Wrap(apperr.ErrValidation, "category is required")
	}
	category, err := s.categories.GetByID(ctx, categoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrValidation, "unknown category")
	}
	if err != nil {
		return err
	}
	if category.UserID != ownerID {
		return apperr.Wrap(apperr.ErrValidation, "unknown category")
	}
	return nil
}
