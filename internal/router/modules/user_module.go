package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-admin-panel/internal/interface/http"
	"github.com/oksasatya/go-admin-panel/internal/router"
)

// UserModule wires the admin user CRUD pages. Every route sits behind the
// login guard; update and destroy are reached through the POST method
// override.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, guard gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(r *router.Routes) {
	r.Handle(http.MethodGet, "/admin/users", router.RouteUsersIndex, m.Guard, m.Handler.Index)
	r.Handle(http.MethodGet, "/admin/users/create", router.RouteUsersCreate, m.Guard, m.Handler.Create)
	r.Handle(http.MethodPost, "/admin/users", router.RouteUsersStore, m.Guard, m.Handler.Store)
	r.Handle(http.MethodGet, "/admin/users/:id/edit", router.RouteUsersEdit, m.Guard, m.Handler.Edit)
	r.Handle(http.MethodPut, "/admin/users/:id", router.RouteUsersUpdate, m.Guard, m.Handler.Update)
	r.Handle(http.MethodDelete, "/admin/users/:id", router.RouteUsersDestroy, m.Guard, m.Handler.Destroy)
}
