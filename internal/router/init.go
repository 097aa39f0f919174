package router

import (
	"context"

	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/internal/container"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/messaging"
	handlers "github.com/oksasatya/go-user-admin/internal/interface/http"
	"github.com/oksasatya/go-user-admin/internal/router/modules"
	"github.com/oksasatya/go-user-admin/pkg/helpers"
)

type UserModuleDeps struct {
	Service *application.UserService
	Handler *handlers.UserHandler
}

// buildUserDeps attaches the optional notifiers (search index, event queue) that were configured at start-up.
func buildUserDeps() UserModuleDeps {
	var (
		notifiers []application.UserNotifier
		searcher  handlers.UserSearcher
	)
	if idx := container.GetUserIndex(); idx != nil {
		notifiers = append(notifiers, idx)
		searcher = idx
	}
	if pub := container.GetRabbitPub(); pub != nil {
		notifiers = append(notifiers, messaging.NewUserEventPublisher(pub))
	}

	service := application.NewUserService(container.GetUserRepository(), container.GetLogger(), notifiers...)
	handler := handlers.NewUserHandler(service, searcher, container.GetLogger())

	return UserModuleDeps{
		Service: service,
		Handler: handler,
	}
}

func buildRoleHandler() *handlers.RoleHandler {
	return handlers.NewRoleHandler(application.NewRoleService(container.GetRoleRepository()), container.GetLogger())
}

func buildHealthHandler() *handlers.HealthHandler {
	h := handlers.NewHealthHandler(container.GetLogger())
	if pool := container.GetPGPool(); pool != nil {
		h.Checks = append(h.Checks, handlers.HealthCheck{Name: "database", Ping: pool.Ping})
	}
	if rdb := container.GetRedis(); rdb != nil {
		h.Checks = append(h.Checks, handlers.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
			return helpers.PingRedis(ctx, rdb, h.Timeout)
		}})
	}
	if es := container.GetES(); es != nil {
		h.Checks = append(h.Checks, handlers.HealthCheck{Name: "elasticsearch", Ping: func(ctx context.Context) error {
			return helpers.PingES(ctx, es, h.Timeout)
		}})
	}
	return h
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	limit := 0
	if cfg != nil {
		limit = cfg.RateLimitPerMinute
	}

	r.Add(modules.NewUserModule(buildUserDeps().Handler, limit))
	r.Add(modules.NewRoleModule(buildRoleHandler(), limit))
	r.Add(modules.NewHealthModule(buildHealthHandler()))
	if cfg == nil || cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
