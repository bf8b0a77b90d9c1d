package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Module describes a feature module that can register its routes.
type Module interface {
	Register(r *Routes)
}

// Routes is handed to modules during registration. Every route lands both on
// the Gin engine and in the dispatch table so not-found / method-not-allowed
// fallbacks and typed parameters share one source of truth.
type Routes struct {
	group *gin.RouterGroup
	table *Table
	base  string
}

// Handle registers a named route. Placeholder parameters (":id") are
// digit-constrained: requests whose segment is not a digit sequence get a
// plain 404 before the handler runs, and the parsed int64 value is stored on
// the context under "param:<name>".
func (r *Routes) Handle(method, path, name string, handlers ...gin.HandlerFunc) {
	full := r.base + path
	r.table.Add(method, full, name)
	if strings.Contains(path, ":") {
		handlers = append([]gin.HandlerFunc{typedParams(r.table, method)}, handlers...)
	}
	r.group.Handle(method, path, handlers...)
}

// ParamID returns the typed :id path parameter extracted during dispatch.
func ParamID(c *gin.Context) int64 {
	return c.GetInt64("param:id")
}

func typedParams(t *Table, method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := t.Match(method, c.Request.URL.Path)
		if res.Kind != Found {
			c.String(http.StatusNotFound, "404 Not Found")
			c.Abort()
			return
		}
		for name, v := range res.Params {
			c.Set("param:"+name, v)
		}
		c.Next()
	}
}

// Registry collects feature modules and registers them on the engine.
type Registry struct {
	Engine      *gin.Engine
	Table       *Table
	middlewares []gin.HandlerFunc
	modules     []Module
	base        string
}

func NewRegistry(engine *gin.Engine, basePath string) *Registry {
	return &Registry{Engine: engine, Table: NewTable(), base: strings.TrimSuffix(basePath, "/")}
}

// Base returns the normalized base path the registry was created with.
func (r *Registry) Base() string {
	return r.base
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll wires every module's routes and installs the table-backed
// fallback handlers.
func (r *Registry) RegisterAll() {
	group := r.Engine.Group(r.base)
	if len(r.middlewares) > 0 {
		group.Use(r.middlewares...)
	}
	routes := &Routes{group: group, table: r.Table, base: r.base}
	for _, m := range r.modules {
		m.Register(routes)
	}

	r.Engine.HandleMethodNotAllowed = true
	r.Engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 Not Found")
	})
	r.Engine.NoMethod(func(c *gin.Context) {
		allowed := r.Table.Allowed(c.Request.URL.Path)
		c.Header("Allow", strings.Join(allowed, ", "))
		c.String(http.StatusMethodNotAllowed, "405 Method Not Allowed. Allowed methods: %s", strings.Join(allowed, ", "))
	})
}
