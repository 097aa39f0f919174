package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/config"
	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	pginfra "github.com/oksasatya/go-user-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-admin/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	gdb, err := pginfra.OpenGorm(pool, logger)
	if err != nil {
		log.Fatalf("failed to open gorm: %v", err)
	}

	ctx = entity.WithActor(ctx, "seed")
	created, err := application.EnsureRoles(ctx, pginfra.NewRoleRepository(gdb, time.Now), entity.DefaultRoleNames)
	if err != nil {
		helpers.LogError(logger, "failed to seed roles", err, logrus.Fields{"created": created})
		return
	}
	helpers.LogInfo(logger, "roles ensured", logrus.Fields{
		"created":  created,
		"existing": len(entity.DefaultRoleNames) - len(created),
	})
}
