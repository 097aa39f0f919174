package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
)

func TestRoleService_MutationsAlwaysConflict(t *testing.T) {
	ctx := context.Background()
	db := newMemoryDB()
	svc := NewRoleService(db.Roles())

	_, err := svc.Create(ctx, RoleWrite{Name: "New"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrRolesSystemManaged)

	_, err = svc.Update(ctx, uuid.New(), RoleWrite{Name: "x"})
	assert.ErrorIs(t, err, ErrRolesSystemManaged)

	_, err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRolesSystemManaged)

	all, err := db.Roles().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRoleService_Reads(t *testing.T) {
	ctx := context.Background()
	db := newMemoryDB()
	_, err := EnsureRoles(ctx, db.Roles(), entity.DefaultRoleNames)
	require.NoError(t, err)
	svc := NewRoleService(db.Roles())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, r := range list {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Admin", "Super Admin", "Tester", "User", "Viewer"}, names)

	got, err := svc.Get(ctx, list[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Admin", got.Name)

	page, err := svc.ListPaged(ctx, PagingRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Tester", page.Items[0].Name)
}

func TestEnsureRoles_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := newMemoryDB()
	_, err := db.Roles().Add(ctx, &entity.Role{Name: "admin"})
	require.NoError(t, err)

	created, err := EnsureRoles(ctx, db.Roles(), entity.DefaultRoleNames)
	require.NoError(t, err)
	assert.Equal(t, []string{"Super Admin", "User", "Viewer", "Tester"}, created)

	created, err = EnsureRoles(ctx, db.Roles(), entity.DefaultRoleNames)
	require.NoError(t, err)
	assert.Empty(t, created)

	all, err := db.Roles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
