package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequireLogin guards the admin area. Anonymous requests are redirected to
// the login form with an auth_required indicator.
func RequireLogin(basePath string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := SessionData(c)
		if data == nil || !data.LoggedIn {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
			}).Warn("unauthenticated access denied")
			c.Redirect(http.StatusFound, basePath+"/login?error=auth_required")
			c.Abort()
			return
		}
		c.Next()
	}
}
