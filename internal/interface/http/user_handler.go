package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-admin-panel/internal/application"
	repo "github.com/oksasatya/go-admin-panel/internal/domain/repository"
	"github.com/oksasatya/go-admin-panel/internal/interface/middleware"
	"github.com/oksasatya/go-admin-panel/internal/router"
	"github.com/oksasatya/go-admin-panel/internal/session"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
	"github.com/oksasatya/go-admin-panel/pkg/validation"
)

// UserHandler serves the admin user CRUD pages. Every state-changing action
// runs the same pipeline: CSRF check, override-verb check, field validation,
// repository call, response selection.
type UserHandler struct {
	Svc      *application.Service
	Sessions session.Store
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
	Base     string
}

func NewUserHandler(svc *application.Service, sessions session.Store, cookies *helpers.CookieManager, logger *logrus.Logger, basePath string) *UserHandler {
	return &UserHandler{Svc: svc, Sessions: sessions, Cookies: cookies, Logger: logger, Base: basePath}
}

type createUserForm struct {
	Name     string `form:"name" binding:"required,alphaspace"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type updateUserForm struct {
	Name     string `form:"name" binding:"required,alphaspace"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"omitempty,min=8"`
}

// Index lists all users ordered by name.
func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
		return
	}
	c.HTML(http.StatusOK, "admin/users/index", gin.H{
		"Base":          h.Base,
		"Users":         users,
		"Success":       c.Query("success"),
		"CSRF":          h.csrfToken(c),
		"CurrentUserID": currentUserID(c),
	})
}

// Create renders the empty create form.
func (h *UserHandler) Create(c *gin.Context) {
	c.HTML(http.StatusOK, "admin/users/create", gin.H{
		"Base":   h.Base,
		"CSRF":   h.csrfToken(c),
		"Errors": map[string]string{},
	})
}

// Store validates and inserts a new user.
func (h *UserHandler) Store(c *gin.Context) {
	if !h.verifyCSRF(c) {
		return
	}

	var f createUserForm
	if err := c.ShouldBind(&f); err != nil {
		details := validation.ToDetails(err)
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"errors":     details,
		}).Info("user create validation failed")
		h.renderCreate(c, http.StatusUnprocessableEntity, details, f.Name, f.Email)
		return
	}

	_, err := h.Svc.Create(c.Request.Context(), f.Name, f.Email, f.Password)
	switch {
	case errors.Is(err, repo.ErrDuplicateEmail):
		h.renderCreate(c, http.StatusConflict, map[string]string{"email": "is already registered"}, f.Name, f.Email)
	case err != nil:
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
	default:
		c.Redirect(http.StatusSeeOther, h.Base+"/admin/users?success=created")
	}
}

// Edit renders the edit form for an existing user.
func (h *UserHandler) Edit(c *gin.Context) {
	id := router.ParamID(c)
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			h.Logger.WithField("user_id", id).Warn("edit of missing user")
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
		return
	}
	c.HTML(http.StatusOK, "admin/users/edit", gin.H{
		"Base":   h.Base,
		"User":   u,
		"CSRF":   h.csrfToken(c),
		"Errors": map[string]string{},
	})
}

// Update changes name/email and, when a new password was submitted,
// separately replaces the stored hash.
func (h *UserHandler) Update(c *gin.Context) {
	if !h.verifyCSRF(c) {
		return
	}
	if !h.expectOverride(c, http.MethodPut) {
		return
	}
	id := router.ParamID(c)

	var f updateUserForm
	if err := c.ShouldBind(&f); err != nil {
		details := validation.ToDetails(err)
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"user_id":    id,
			"errors":     details,
		}).Info("user update validation failed")
		h.renderEdit(c, http.StatusUnprocessableEntity, id, details)
		return
	}

	if err := h.Svc.Update(c.Request.Context(), id, f.Name, f.Email, f.Password); err != nil {
		h.renderEdit(c, http.StatusInternalServerError, id, map[string]string{
			"general": "The user could not be updated.",
		})
		return
	}
	c.Redirect(http.StatusSeeOther, h.Base+"/admin/users?success=updated")
}

// Destroy deletes a user, refusing to remove the authenticated account.
func (h *UserHandler) Destroy(c *gin.Context) {
	if !h.verifyCSRF(c) {
		return
	}
	if !h.expectOverride(c, http.MethodDelete) {
		return
	}
	id := router.ParamID(c)

	err := h.Svc.Delete(c.Request.Context(), id, currentUserID(c))
	switch {
	case errors.Is(err, application.ErrSelfDelete):
		c.String(http.StatusForbidden, "You cannot delete your own account.")
	case errors.Is(err, repo.ErrNotFound):
		c.String(http.StatusNotFound, "The user could not be deleted (it may no longer exist).")
	case err != nil:
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
	default:
		c.Redirect(http.StatusSeeOther, h.Base+"/admin/users?success=deleted")
	}
}

// verifyCSRF checks the submitted anti-forgery token against the session.
func (h *UserHandler) verifyCSRF(c *gin.Context) bool {
	ok := h.Sessions.VerifyToken(c.Request.Context(), middleware.SessionID(c), c.PostForm("_csrf_token"))
	if !ok {
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).Warn("csrf token mismatch")
		c.String(http.StatusForbidden, "Error: invalid CSRF token.")
	}
	return ok
}

// expectOverride rejects requests whose _method field does not match the
// verb this action was registered under.
func (h *UserHandler) expectOverride(c *gin.Context, verb string) bool {
	if strings.ToUpper(strings.TrimSpace(c.PostForm("_method"))) != verb {
		c.String(http.StatusMethodNotAllowed, "Method not allowed.")
		return false
	}
	return true
}

// csrfToken fetches (or creates) the session's anti-forgery token for a
// rendered form, refreshing the cookie when a fresh session was created.
func (h *UserHandler) csrfToken(c *gin.Context) string {
	sid := middleware.SessionID(c)
	token, newSID, err := h.Sessions.Token(c.Request.Context(), sid)
	if err != nil {
		h.Logger.WithError(err).Warn("issuing csrf token failed")
		return ""
	}
	if newSID != sid {
		h.Cookies.SetSession(c, newSID)
	}
	return token
}

func currentUserID(c *gin.Context) int64 {
	if s := middleware.SessionData(c); s != nil {
		return s.UserID
	}
	return 0
}

func (h *UserHandler) renderCreate(c *gin.Context, status int, errs map[string]string, name, email string) {
	c.HTML(status, "admin/users/create", gin.H{
		"Base":   h.Base,
		"Errors": errs,
		"Old":    gin.H{"Name": name, "Email": email},
		"CSRF":   h.csrfToken(c),
	})
}

func (h *UserHandler) renderEdit(c *gin.Context, status int, id int64, errs map[string]string) {
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "500 Internal Server Error")
		return
	}
	c.HTML(status, "admin/users/edit", gin.H{
		"Base":   h.Base,
		"User":   u,
		"Errors": errs,
		"CSRF":   h.csrfToken(c),
	})
}
