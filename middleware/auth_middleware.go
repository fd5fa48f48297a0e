package middleware

import (
	"net/http"

	"notekeeper/config"
	"notekeeper/internal/auth"

	"github.com/gin-gonic/gin"
)

// SessionAuth resolves the current user from the session cookie. A missing
// or stale session redirects to the anonymous landing page rather than
// rendering an error page.
func SessionAuth(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GlobalConfig.Session
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		claims, err := auth.ParseSessionToken(cfg.Secret, token)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		// Redis 记录是会话的唯一权威来源；注销后 cookie 即失效
		userID, err := session.Lookup(claims.SessionID)
		if err != nil || userID != claims.UserID {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
