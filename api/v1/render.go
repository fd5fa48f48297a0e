package v1

import (
	"errors"
	"net/http"
	"strings"

	"notekeeper/config"
	"notekeeper/internal/apperr"
	"notekeeper/internal/auth"

	"github.com/gin-gonic/gin"
)

const flashCookie = "nk_flash"

// currentUserID reads the user id placed into the context by the session
// middleware. Handlers behind the middleware can rely on it being set.
func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint64)
	return id
}

// sessionUserID resolves the session cookie outside the auth middleware,
// for routes that render differently for anonymous and logged-in visitors.
func sessionUserID(c *gin.Context, session *auth.SessionManager) (uint64, bool) {
	cfg := config.GlobalConfig.Session
	token, err := c.Cookie(cfg.CookieName)
	if err != nil || token == "" {
		return 0, false
	}
	claims, err := auth.ParseSessionToken(cfg.Secret, token)
	if err != nil {
		return 0, false
	}
	userID, err := session.Lookup(claims.SessionID)
	if err != nil || userID != claims.UserID {
		return 0, false
	}
	return userID, true
}

// setFlash stores a one-shot message in a short-lived cookie, popped by the
// next rendered page.
func setFlash(c *gin.Context, level, message string) {
	c.SetCookie(flashCookie, level+"|"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c *gin.Context) gin.H {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	level, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return gin.H{"Level": level, "Message": message}
}

// render wires the flash message into the template data.
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if flash := popFlash(c); flash != nil {
		data["Flash"] = flash
	}
	c.HTML(status, template, data)
}

// renderError maps one service error kind onto its error page. NotFound and
// Forbidden stay distinct outcomes all the way to the response.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrForbidden):
		c.HTML(http.StatusUnauthorized, "401.html", gin.H{})
	case errors.Is(err, apperr.ErrNotFound):
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	default:
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	}
	c.Abort()
}
