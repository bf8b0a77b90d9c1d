package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-admin-panel/internal/application"
	"github.com/oksasatya/go-admin-panel/internal/interface/middleware"
	"github.com/oksasatya/go-admin-panel/internal/session"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
)

type AuthHandler struct {
	Svc      *application.Service
	Sessions session.Store
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
	Base     string
}

func NewAuthHandler(svc *application.Service, sessions session.Store, cookies *helpers.CookieManager, logger *logrus.Logger, basePath string) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions, Cookies: cookies, Logger: logger, Base: basePath}
}

// ShowLogin renders the login form. The error and logout query parameters
// drive informational banners only.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "auth/login", gin.H{
		"Base":   h.Base,
		"Error":  c.Query("error"),
		"Logout": c.Query("logout"),
	})
}

// Login authenticates email/password. Empty input short-circuits before any
// lookup; on success the session id is regenerated before the identity is
// stored, so a pre-login id can never name an authenticated session.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.Redirect(http.StatusSeeOther, h.Base+"/login?error=empty")
		return
	}

	u, err := h.Svc.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"email":      email,
		}).Info("failed login attempt")
		c.Redirect(http.StatusSeeOther, h.Base+"/login?error=invalid")
		return
	}

	sid, err := h.Sessions.Login(c.Request.Context(), middleware.SessionID(c), u.ID, u.Name)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("establishing session failed")
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
		return
	}
	h.Cookies.SetSession(c, sid)

	h.Logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"user_id":    u.ID,
	}).Info("user logged in")
	c.Redirect(http.StatusSeeOther, h.Base+"/admin/users")
}

// Logout clears all session state and expires the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if sid != "" {
		if err := h.Sessions.Destroy(c.Request.Context(), sid); err != nil {
			h.Logger.WithError(err).Warn("destroying session failed")
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, h.Base+"/login?logout=success")
}
