package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-admin/internal/container"
	handlers "github.com/oksasatya/go-user-admin/internal/interface/http"
	"github.com/oksasatya/go-user-admin/internal/interface/middleware"
)

// UserModule wires the user administration routes:
// GET /api/users, GET /api/users/search, GET|PUT|DELETE /api/users/:id, POST /api/users
type UserModule struct {
	Handler *handlers.UserHandler
	Limit   int // requests per minute per actor; 0 disables
}

func NewUserModule(h *handlers.UserHandler, limit int) *UserModule {
	return &UserModule{Handler: h, Limit: limit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RateLimit(container.GetRedis(), m.Limit, time.Minute, middleware.KeyByActor(), nil))
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.POST("", m.Handler.Create)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
