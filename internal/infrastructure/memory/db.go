// Package memory is the in-process storage driver. It mirrors the postgres
// driver's semantics (default filters, audit stamping, cascade on delete)
// and backs STORAGE_DRIVER=memory as well as the service tests.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// DB holds every table behind one lock so multi-table writes commit atomically.
type DB struct {
	mu    sync.RWMutex
	users *Store[entity.User]
	roles *Store[entity.Role]
	links []entity.UserRole
}

// NewDB creates an empty database. now may be nil.
func NewDB(now func() time.Time) *DB {
	db := &DB{}
	db.users = newStore(&db.mu, schema[entity.User]{
		columns: Columns[entity.User]{
			entity.ColID:            func(u *entity.User) any { return u.ID },
			entity.ColCreatedDate:   func(u *entity.User) any { return u.CreatedDate },
			entity.ColUpdatedDate:   func(u *entity.User) any { return u.UpdatedDate },
			entity.UserColFirstName: func(u *entity.User) any { return u.FirstName },
			entity.UserColLastName:  func(u *entity.User) any { return u.LastName },
			entity.UserColEmail:     func(u *entity.User) any { return u.Email },
			entity.UserColActive:    func(u *entity.User) any { return u.Active },
			entity.UserColIsDeleted: func(u *entity.User) any { return u.IsDeleted },
		},
		defaults: []repository.Filter{repository.NotDeleted},
		detach:   func(u *entity.User) { u.UserRoles = nil },
		hydrate:  db.hydrateUser,
		onDelete: func(id uuid.UUID) { db.unlink(func(l entity.UserRole) bool { return l.UserID == id }) },
	}, now)
	db.roles = newStore(&db.mu, schema[entity.Role]{
		columns: Columns[entity.Role]{
			entity.ColID:          func(r *entity.Role) any { return r.ID },
			entity.ColCreatedDate: func(r *entity.Role) any { return r.CreatedDate },
			entity.ColUpdatedDate: func(r *entity.Role) any { return r.UpdatedDate },
			entity.RoleColName:    func(r *entity.Role) any { return r.Name },
		},
		detach:   func(r *entity.Role) { r.UserRoles = nil },
		hydrate:  db.hydrateRole,
		onDelete: func(id uuid.UUID) { db.unlink(func(l entity.UserRole) bool { return l.RoleID == id }) },
	}, now)
	return db
}

// Users returns the user repository backed by db.
func (db *DB) Users() *UserRepository { return &UserRepository{Store: db.users, db: db} }

// Roles returns the role repository backed by db.
func (db *DB) Roles() *RoleRepository { return &RoleRepository{Store: db.roles} }

// unlink drops join rows matching drop. Caller holds the write lock.
func (db *DB) unlink(drop func(entity.UserRole) bool) {
	db.links = slices.DeleteFunc(db.links, drop)
}

func wants(includes []string, rel string) bool {
	for _, inc := range includes {
		if inc == rel || strings.HasPrefix(inc, rel+".") {
			return true
		}
	}
	return false
}

// hydrateUser runs under the read lock held by the caller.
func (db *DB) hydrateUser(u *entity.User, includes []string) {
	if !wants(includes, "UserRoles") {
		return
	}
	withRole := wants(includes, entity.UserRelRoles)
	u.UserRoles = []entity.UserRole{}
	for _, l := range db.links {
		if l.UserID != u.ID {
			continue
		}
		link := entity.UserRole{UserID: l.UserID, RoleID: l.RoleID}
		if withRole {
			if r, ok := db.roles.rows[l.RoleID]; ok {
				role := *r
				link.Role = &role
			}
		}
		u.UserRoles = append(u.UserRoles, link)
	}
}

func (db *DB) hydrateRole(r *entity.Role, includes []string) {
	if !wants(includes, "UserRoles") {
		return
	}
	r.UserRoles = []entity.UserRole{}
	for _, l := range db.links {
		if l.RoleID == r.ID {
			r.UserRoles = append(r.UserRoles, entity.UserRole{UserID: l.UserID, RoleID: l.RoleID})
		}
	}
}
