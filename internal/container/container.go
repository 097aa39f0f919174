package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/go-user-admin/config"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/search"
	"github.com/oksasatya/go-user-admin/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	gormDB      *gorm.DB
	redisClient *redis.Client

	userRepo repository.UserRepository
	roleRepo repository.RoleRepository

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
	userIndex *search.UserIndex
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetGorm(db *gorm.DB)        { gormDB = db }
func GetGorm() *gorm.DB          { return gormDB }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

// SetRepositories installs the storage driver chosen at start-up (postgres or memory).
func SetRepositories(users repository.UserRepository, roles repository.RoleRepository) {
	userRepo, roleRepo = users, roles
}
func GetUserRepository() repository.UserRepository { return userRepo }
func GetRoleRepository() repository.RoleRepository { return roleRepo }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetUserIndex(x *search.UserIndex)        { userIndex = x }
func GetUserIndex() *search.UserIndex         { return userIndex }
