package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery converts panics during action execution into a 500. The panic
// detail is shown only in development mode; production gets generic text.
func Recovery(logger *logrus.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(recovered),
		}).Error("panic during request handling")
		if development {
			c.String(http.StatusInternalServerError, "500 Internal Server Error\n%v", recovered)
		} else {
			c.String(http.StatusInternalServerError, "500 Internal Server Error")
		}
		c.Abort()
	})
}
