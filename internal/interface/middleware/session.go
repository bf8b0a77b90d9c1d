package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-admin-panel/internal/session"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
)

const (
	ctxSessionID   = "session_id"
	ctxSessionData = "session_data"
)

// Session resolves the session cookie into the request context. Requests
// without a session (or with an expired one) proceed anonymously.
func Session(store session.Store, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cookies.Session(c)
		if sid != "" {
			if data, err := store.Get(c.Request.Context(), sid); err == nil && data != nil {
				c.Set(ctxSessionID, sid)
				c.Set(ctxSessionData, data)
			}
		}
		c.Next()
	}
}

// SessionID returns the current session id, empty for anonymous requests.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

// SessionData returns the resolved session state, nil for anonymous requests.
func SessionData(c *gin.Context) *session.Data {
	if v, ok := c.Get(ctxSessionData); ok {
		if d, ok := v.(*session.Data); ok {
			return d
		}
	}
	return nil
}
