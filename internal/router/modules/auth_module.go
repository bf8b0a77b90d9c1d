package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-admin-panel/internal/interface/http"
	"github.com/oksasatya/go-admin-panel/internal/router"
)

// AuthModule wires the login/logout flow.
// GET /login renders the form, POST /login authenticates, GET /logout ends
// the session.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(r *router.Routes) {
	r.Handle(http.MethodGet, "/login", router.RouteLoginForm, m.Handler.ShowLogin)
	r.Handle(http.MethodPost, "/login", router.RouteLogin, m.Handler.Login)
	r.Handle(http.MethodGet, "/logout", router.RouteLogout, m.Handler.Logout)
}
