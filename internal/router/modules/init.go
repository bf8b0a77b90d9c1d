package modules

import (
	"github.com/oksasatya/go-admin-panel/internal/application"
	"github.com/oksasatya/go-admin-panel/internal/container"
	pginfra "github.com/oksasatya/go-admin-panel/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-admin-panel/internal/interface/http"
	"github.com/oksasatya/go-admin-panel/internal/interface/middleware"
	"github.com/oksasatya/go-admin-panel/internal/router"
)

// InitModules builds the application modules from the container singletons
// and registers them with the router registry. Called once during startup.
func InitModules(r *router.Registry) {
	logger := container.GetLogger()
	sessions := container.GetSessions()

	cookies := container.GetCookies()
	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewService(repo, logger)

	base := r.Base()
	guard := middleware.RequireLogin(base, logger)

	r.Add(NewHomeModule(handlers.NewHomeHandler(base)))
	r.Add(NewAuthModule(handlers.NewAuthHandler(service, sessions, cookies, logger, base)))
	r.Add(NewUserModule(handlers.NewUserHandler(service, sessions, cookies, logger, base), guard))
}
