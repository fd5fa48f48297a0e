package v1

import (
	"errors"
	"net/http"
	"strings"

	"notekeeper/api/v1/request"
	"notekeeper/config"
	"notekeeper/internal/apperr"
	"notekeeper/internal/metrics"
	"notekeeper/service"

	"github.com/gin-gonic/gin"
)

// UserAPI exposes the registration / login / logout pages.
type UserAPI struct {
	service *service.UserService
}

// NewUserAPI wires the service layer into the HTTP handlers.
func NewUserAPI(s *service.UserService) *UserAPI {
	return &UserAPI{service: s}
}

// ShowRegister renders the registration form; logged-in visitors are sent
// back to the landing page.
func (u *UserAPI) ShowRegister(c *gin.Context) {
	if _, ok := sessionUserID(c, u.service.Session); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "register.html", nil)
}

// Register handles new account creation. On success the visitor is sent to
// the landing page without being logged in.
func (u *UserAPI) Register(c *gin.Context) {
	if _, ok := sessionUserID(c, u.service.Session); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	var form request.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.IncRegister("bad_request")
		render(c, http.StatusBadRequest, "register.html", gin.H{"Error": err.Error(), "Form": form})
		return
	}
	if err := u.service.Register(form.Name, form.Email, form.Password); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			metrics.IncRegister("conflict")
			render(c, http.StatusConflict, "register.html", gin.H{
				"Error": "Email already registered. Please choose another.",
				"Form":  form,
			})
			return
		}
		metrics.IncRegister("internal_error")
		renderError(c, err)
		return
	}
	metrics.IncRegister("success")
	setFlash(c, "success", "Success! Now you can login")
	c.Redirect(http.StatusFound, "/")
}

// ShowLogin renders the login form.
func (u *UserAPI) ShowLogin(c *gin.Context) {
	if _, ok := sessionUserID(c, u.service.Session); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "login.html", nil)
}

// Login validates the credentials and starts a session. Unknown email and
// wrong password produce the same message.
func (u *UserAPI) Login(c *gin.Context) {
	if _, ok := sessionUserID(c, u.service.Session); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	var form request.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.IncLogin("bad_request")
		render(c, http.StatusBadRequest, "login.html", gin.H{"Error": err.Error(), "Form": form})
		return
	}
	user, err := u.service.Authenticate(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			metrics.IncLogin("internal_error")
			renderError(c, err)
			return
		}
		metrics.IncLogin("unauthorized")
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Something wrong. Please check email and password!",
			"Form":  form,
		})
		return
	}
	token, ttl, err := u.service.StartSession(user, form.Remember)
	if err != nil {
		metrics.IncLogin("internal_error")
		renderError(c, err)
		return
	}
	// 未勾选 remember 时下发浏览器会话 cookie（无 Max-Age）
	maxAge := 0
	if form.Remember {
		maxAge = int(ttl.Seconds())
	}
	c.SetCookie(config.GlobalConfig.Session.CookieName, token, maxAge, "/", "", false, true)
	metrics.IncLogin("success")

	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout ends the session regardless of its state and clears the cookie.
func (u *UserAPI) Logout(c *gin.Context) {
	cookieName := config.GlobalConfig.Session.CookieName
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		u.service.EndSession(token)
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
