package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-admin-panel/internal/interface/http"
	"github.com/oksasatya/go-admin-panel/internal/router"
)

type HomeModule struct {
	Handler *handlers.HomeHandler
}

func NewHomeModule(h *handlers.HomeHandler) *HomeModule {
	return &HomeModule{Handler: h}
}

func (m *HomeModule) Register(r *router.Routes) {
	r.Handle(http.MethodGet, "/", router.RouteHome, m.Handler.Index)
}
