package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/membership"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

type UserRepository struct {
	*Store[entity.User]
	db *DB
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.rows {
		if u.IsDeleted {
			continue
		}
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(u.Email)) == needle {
			return true, nil
		}
	}
	return false, nil
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

// SetRoles applies the reconciliation plan inside one write-lock section.
func (r *UserRepository) SetRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, err := r.visible(userID)
	if err != nil || u == nil {
		return err
	}

	var current []uuid.UUID
	for _, l := range r.db.links {
		if l.UserID == userID {
			current = append(current, l.RoleID)
		}
	}
	var existing []uuid.UUID
	for _, id := range roleIDs {
		if _, ok := r.db.roles.rows[id]; ok {
			existing = append(existing, id)
		}
	}

	plan := membership.Reconcile(current, roleIDs, existing)
	if plan.Empty() {
		return nil
	}
	if len(plan.Remove) > 0 {
		drop := make(map[uuid.UUID]struct{}, len(plan.Remove))
		for _, id := range plan.Remove {
			drop[id] = struct{}{}
		}
		r.db.unlink(func(l entity.UserRole) bool {
			_, ok := drop[l.RoleID]
			return l.UserID == userID && ok
		})
	}
	for _, id := range plan.Add {
		r.db.links = append(r.db.links, entity.UserRole{UserID: userID, RoleID: id})
	}
	return nil
}

type RoleRepository struct {
	*Store[entity.Role]
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
