package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

type RoleRepository struct {
	*Store[entity.Role]
}

func NewRoleRepository(db *gorm.DB, now func() time.Time) *RoleRepository {
	cols := append([]string{entity.RoleColName}, auditColumns...)
	return &RoleRepository{Store: newStore[entity.Role](db, now, cols)}
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
