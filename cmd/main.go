package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/config"
	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/internal/container"
	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/search"
	"github.com/oksasatya/go-user-admin/internal/interface/middleware"
	"github.com/oksasatya/go-user-admin/internal/router"
	"github.com/oksasatya/go-user-admin/pkg/helpers"
	"github.com/oksasatya/go-user-admin/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)

	closeStore, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("storage: %v", err)
	}
	defer closeStore()

	// Redis backs the rate limiter; it fails open when the server is down.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.PingRedis(ctx, rdb, 2*time.Second); err != nil {
		logger.WithError(err).Warn("redis unavailable; rate limiting disabled until it recovers")
	}
	container.SetRedis(rdb)

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("failed to init elasticsearch client: %v", err)
		}
		container.SetES(es)
		container.SetUserIndex(search.NewUserIndex(es, cfg.ESUsersIndex))
	}

	if cfg.EventsEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQUserEventsQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP(), middleware.Recovery(logger))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID, middleware.HeaderActor},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(middleware.RequestLogger(logger, cfg.IsDevelopment()))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.Use(middleware.Actor(cfg.DefaultActor))
	router.InitModules(reg)
	reg.RegisterAll()
	for _, route := range reg.Routes() {
		logger.Debugf("route %s", route)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithField("driver", cfg.StorageDriver).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// setupStorage installs the repositories for cfg.StorageDriver and returns their closer.
func setupStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		db := memory.NewDB(time.Now)
		created, err := application.EnsureRoles(ctx, db.Roles(), entity.DefaultRoleNames)
		if err != nil {
			return nil, fmt.Errorf("seed roles: %w", err)
		}
		helpers.LogInfo(logger, "in-memory storage ready", logrus.Fields{"roles_created": created})
		container.SetRepositories(db.Users(), db.Roles())
		return func() {}, nil

	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.AutoMigrate {
			if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		gdb, err := pginfra.OpenGorm(pool, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("open gorm: %w", err)
		}
		container.SetPGPool(pool)
		container.SetGorm(gdb)
		container.SetRepositories(pginfra.NewUserRepository(gdb, time.Now), pginfra.NewRoleRepository(gdb, time.Now))
		return pool.Close, nil
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}
