package v1

import (
	"errors"
	"net/http"
	"strconv"

	"notekeeper/api/v1/request"
	"notekeeper/internal/apperr"
	"notekeeper/internal/metrics"
	"notekeeper/service"

	"github.com/gin-gonic/gin"
)

// CategoryAPI exposes the owner-scoped category pages.
type CategoryAPI struct {
	service *service.CategoryService
}

func NewCategoryAPI(s *service.CategoryService) *CategoryAPI {
	return &CategoryAPI{service: s}
}

// List renders one page of the current user's categories.
func (a *CategoryAPI) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := a.service.List(c.Request.Context(), currentUserID(c), page)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "categories.html", gin.H{"Categories": result})
}

// ShowAdd renders the empty category form.
func (a *CategoryAPI) ShowAdd(c *gin.Context) {
	render(c, http.StatusOK, "category_form.html", gin.H{"Action": "/add_category"})
}

// Add creates a category owned by the current user.
func (a *CategoryAPI) Add(c *gin.Context) {
	var form request.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "category_form.html", gin.H{
			"Action": "/add_category", "Error": err.Error(), "Form": form,
		})
		return
	}
	if _, err := a.service.Create(c.Request.Context(), currentUserID(c), form.Description); err != nil {
		renderError(c, err)
		return
	}
	metrics.IncMutation("category", "create")
	setFlash(c, "success", "Category added!")
	c.Redirect(http.StatusFound, "/categories")
}

// ShowEdit renders the form pre-filled with the owned category.
func (a *CategoryAPI) ShowEdit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	category, err := a.service.Get(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "category_form.html", gin.H{
		"Action":   "/edit_category/" + strconv.FormatUint(id, 10),
		"Category": category,
	})
}

// Edit updates the description of an owned category.
func (a *CategoryAPI) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	var form request.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "category_form.html", gin.H{
			"Action": "/edit_category/" + strconv.FormatUint(id, 10),
			"Error":  err.Error(), "Form": form,
		})
		return
	}
	if err := a.service.Update(c.Request.Context(), id, currentUserID(c), form.Description); err != nil {
		renderError(c, err)
		return
	}
	metrics.IncMutation("category", "update")
	c.Redirect(http.StatusFound, "/categories")
}

// Delete removes an owned category. Categories still referenced by notes
// are kept, with a flash explaining why.
func (a *CategoryAPI) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderError(c, apperr.ErrNotFound)
		return
	}
	if err := a.service.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			setFlash(c, "danger", "Category still has notes. Delete or move them first.")
			c.Redirect(http.StatusFound, "/categories")
			return
		}
		renderError(c, err)
		return
	}
	metrics.IncMutation("category", "delete")
	c.Redirect(http.StatusFound, "/categories")
}

// parseID reads the numeric :id path parameter; malformed ids read as a
// missing resource.
func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
