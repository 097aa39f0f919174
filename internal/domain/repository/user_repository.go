package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
)

// UserRepository defines the user-specific persistence operations on top of Store.
// Soft-deleted users are invisible to every method.
type UserRepository interface {
	Store[entity.User, uuid.UUID]

	// EmailExists compares trimmed, lower-cased emails. excludeID skips one user (the one being updated).
	EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	// GetWithRoles loads the user with UserRoles and their Role; nil when absent.
	GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// SetRoles reconciles the user's associations with roleIDs in a single commit.
	// Unknown role ids and a missing user are silently ignored.
	SetRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
}

// RoleRepository defines persistence for the system-managed roles.
type RoleRepository interface {
	Store[entity.Role, uuid.UUID]
}

// NotDeleted is the default filter applied to every user read.
var NotDeleted Filter = Equals{Column: entity.UserColIsDeleted, Value: false}
