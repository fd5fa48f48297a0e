package v1

import (
	"net/http"

	"notekeeper/service"

	"github.com/gin-gonic/gin"
)

// PageAPI renders the pages that adapt to whether a visitor is logged in.
type PageAPI struct {
	users      *service.UserService
	categories *service.CategoryService
}

func NewPageAPI(users *service.UserService, categories *service.CategoryService) *PageAPI {
	return &PageAPI{users: users, categories: categories}
}

// Index is the landing page: anonymous visitors get the plain page,
// authenticated ones additionally see their categories.
func (p *PageAPI) Index(c *gin.Context) {
	userID, ok := sessionUserID(c, p.users.Session)
	if !ok {
		render(c, http.StatusOK, "index.html", nil)
		return
	}
	user, err := p.users.GetByID(userID)
	if err != nil {
		// 会话指向的用户不存在：按匿名处理
		render(c, http.StatusOK, "index.html", nil)
		return
	}
	categories, err := p.categories.All(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{
		"User":       user.Name,
		"Categories": categories,
	})
}
