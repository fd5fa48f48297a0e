package v1

import (
	"errors"
	"net/http"
	"strconv"

	"notekeeper/api/v1/request"
	"notekeeper/dao"
	"notekeeper/internal/apperr"
	"notekeeper/internal/metrics"
	"notekeeper/service"

	"github.com/gin-gonic/gin"
)

// NoteAPI exposes the owner-scoped note pages, including photo upload.
type NoteAPI struct {
	notes      *service.NoteService
	categories *service.CategoryService
}

func NewNoteAPI(notes *service.NoteService, categories *service.CategoryService) *NoteAPI {
	return &NoteAPI{notes: notes, categories: categories}
}

// List renders one page of the current user's notes, optionally filtered by
// category and/or description substring. GET carries the filters in the
// query string, POST in the form body; both land in the same binding.
func (a *NoteAPI) List(c *gin.Context) {
	userID := currentUserID(c)

	var filterForm request.NoteFilterForm
	if err := c.ShouldBind(&filterForm); err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	filter := dao.NoteFilter{
		CategoryID:  filterForm.Category,
		Description: filterForm.Description,
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := a.notes.List(c.Request.Context(), userID, filter, page)
	if err != nil {
		renderError(c, err)
		return
	}
	categories, err := a.categories.All(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "notes.html", gin.H{
		"Notes":      result,
		"Categories": categories,
		"Filter":     filterForm,
	})
}

// ShowAdd renders the empty note form with the user's categories.
func (a *NoteAPI) ShowAdd(c *gin.Context) {
	categories, err := a.categories.All(c.Request.Context(), currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "note_form.html", gin.H{
		"Action": "/add_notes", "Categories": categories,
	})
}

// Add creates a note, storing the uploaded photo when one was attached.
func (a *NoteAPI) Add(c *gin.Context) {
	userID := currentUserID(c)
	form, upload, cleanup, ok := a.bindNoteForm(c, "/add_notes")
	if !ok {
		return
	}
	defer cleanup()

	_, err := a.notes.Create(c.Request.Context(), userID, service.NoteInput{
		Description: form.Description,
		Text:        form.Text,
		CategoryID:  form.CategoryID,
		Photo:       upload,
	})
	if err != nil {
		a.renderNoteError(c, err, "/add_notes", form)
		return
	}
	if upload != nil {
		metrics.IncUpload("success")
	}
	metrics.IncMutation("note", "create")
	c.Redirect(http.StatusFound, "/notes")
}

// ShowEdit renders the form pre-filled with the owned note.
func (a *NoteAPI) ShowEdit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	userID := currentUserID(c)
	note, err := a.notes.Get(c.Request.Context(), id, userID)
	if err != nil {
		renderError(c, err)
		return
	}
	categories, err := a.categories.All(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "note_form.html", gin.H{
		"Action":     "/edit_note/" + strconv.FormatUint(id, 10),
		"Note":       note,
		"Categories": categories,
	})
}

// Edit updates an owned note; a freshly uploaded photo replaces the old
// file.
func (a *NoteAPI) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	action := "/edit_note/" + strconv.FormatUint(id, 10)
	form, upload, cleanup, ok := a.bindNoteForm(c, action)
	if !ok {
		return
	}
	defer cleanup()

	err = a.notes.Update(c.Request.Context(), id, currentUserID(c), service.NoteInput{
		Description: form.Description,
		Text:        form.Text,
		CategoryID:  form.CategoryID,
		Photo:       upload,
	})
	if err != nil {
		a.renderNoteError(c, err, action, form)
		return
	}
	if upload != nil {
		metrics.IncUpload("success")
	}
	metrics.IncMutation("note", "update")
	c.Redirect(http.StatusFound, "/notes")
}

// Delete removes an owned note and its photo file.
func (a *NoteAPI) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	if err := a.notes.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		renderError(c, err)
		return
	}
	metrics.IncMutation("note", "delete")
	c.Redirect(http.StatusFound, "/notes")
}

// bindNoteForm binds the multipart note form and opens the optional photo
// upload. The returned cleanup closes the upload stream and must run after
// the service call consumed it.
func (a *NoteAPI) bindNoteForm(c *gin.Context, action string) (request.NoteForm, *service.PhotoUpload, func(), bool) {
	noop := func() {}

	var form request.NoteForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderNoteForm(c, http.StatusBadRequest, action, form, err.Error())
		return form, nil, noop, false
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, noop, true
		}
		a.renderNoteForm(c, http.StatusBadRequest, action, form, "photo upload failed")
		return form, nil, noop, false
	}
	f, err := fh.Open()
	if err != nil {
		metrics.IncUpload("internal_error")
		renderError(c, err)
		return form, nil, noop, false
	}
	upload := &service.PhotoUpload{Filename: fh.Filename, Reader: f}
	return form, upload, func() { _ = f.Close() }, true
}

// renderNoteError distinguishes input problems, which re-render the form,
// from ownership/lookup failures, which render an error page.
func (a *NoteAPI) renderNoteError(c *gin.Context, err error, action string, form request.NoteForm) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		a.renderNoteForm(c, http.StatusBadRequest, action, form, err.Error())
	case errors.Is(err, apperr.ErrUnprocessable):
		metrics.IncUpload("unprocessable")
		a.renderNoteForm(c, http.StatusUnprocessableEntity, action, form, "Could not read the uploaded image.")
	default:
		renderError(c, err)
	}
}

func (a *NoteAPI) renderNoteForm(c *gin.Context, status int, action string, form request.NoteForm, message string) {
	categories, err := a.categories.All(c.Request.Context(), currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, status, "note_form.html", gin.H{
		"Action": action, "Form": form, "Categories": categories, "Error": message,
	})
}
