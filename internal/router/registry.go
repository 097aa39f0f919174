package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Registry collects API-wide middleware and feature modules and mounts them under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	mounted     bool
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

// Use adds middleware that runs for every /api route; call before RegisterAll.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts every module once; later calls are no-ops since gin panics on duplicate routes.
func (r *Registry) RegisterAll() {
	if r.mounted {
		return
	}
	r.mounted = true
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

// Routes returns the mounted routes as "METHOD path", sorted, for start-up logging.
func (r *Registry) Routes() []string {
	infos := r.Engine.Routes()
	out := make([]string, 0, len(infos))
	for _, ri := range infos {
		out = append(out, ri.Method+" "+ri.Path)
	}
	sort.Strings(out)
	return out
}
