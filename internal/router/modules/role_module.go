package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-admin/internal/container"
	handlers "github.com/oksasatya/go-user-admin/internal/interface/http"
	"github.com/oksasatya/go-user-admin/internal/interface/middleware"
)

type RoleModule struct {
	Handler *handlers.RoleHandler
	Limit   int
}

func NewRoleModule(h *handlers.RoleHandler, limit int) *RoleModule {
	return &RoleModule{Handler: h, Limit: limit}
}

func (m *RoleModule) Register(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	roles.Use(middleware.RateLimit(container.GetRedis(), m.Limit, time.Minute, middleware.KeyByActor(), nil))
	{
		roles.GET("", m.Handler.List)
		roles.GET("/:id", m.Handler.Get)
		// mutations always answer 409
		roles.POST("", m.Handler.Create)
		roles.PUT("/:id", m.Handler.Update)
		roles.DELETE("/:id", m.Handler.Delete)
	}
}
