package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/membership"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

type UserRepository struct {
	*Store[entity.User]
}

func NewUserRepository(db *gorm.DB, now func() time.Time) *UserRepository {
	cols := append([]string{
		entity.UserColFirstName,
		entity.UserColLastName,
		entity.UserColEmail,
		entity.UserColActive,
		entity.UserColIsDeleted,
	}, auditColumns...)
	return &UserRepository{Store: newStore[entity.User](db, now, cols, repository.NotDeleted)}
}

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("is_deleted = ?", false).
		Where("LOWER(TRIM(email)) = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	users, err := r.Query().
		Where(repository.Equals{Column: entity.ColID, Value: id}).
		Include(entity.UserRelRoles).
		Take(1).
		Find(ctx)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

// SetRoles loads the current links, diffs them against roleIDs and applies
// the plan in one transaction.
func (r *UserRepository) SetRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u entity.User
		err := tx.Preload("UserRoles").
			Where("is_deleted = ?", false).
			Take(&u, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load user %s: %w", userID, err)
		}

		current := make([]uuid.UUID, 0, len(u.UserRoles))
		for _, ur := range u.UserRoles {
			current = append(current, ur.RoleID)
		}
		var existing []uuid.UUID
		if desired := membership.Unique(roleIDs); len(desired) > 0 {
			if err := tx.Model(&entity.Role{}).Where("id IN ?", desired).Pluck("id", &existing).Error; err != nil {
				return fmt.Errorf("load roles: %w", err)
			}
		}

		plan := membership.Reconcile(current, roleIDs, existing)
		if len(plan.Remove) > 0 {
			err := tx.Where("user_id = ? AND role_id IN ?", userID, plan.Remove).
				Delete(&entity.UserRole{}).Error
			if err != nil {
				return fmt.Errorf("unlink roles: %w", err)
			}
		}
		if len(plan.Add) > 0 {
			rows := make([]entity.UserRole, 0, len(plan.Add))
			for _, id := range plan.Add {
				rows = append(rows, entity.UserRole{UserID: userID, RoleID: id})
			}
			if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
				return fmt.Errorf("link roles: %w", translate(err))
			}
		}
		return nil
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
