//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		os.Exit(0)
	}
	logger := logrus.New()
	if err := Migrate(dsn, "../../../db/migrations", logger); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	pool, err := NewPool(context.Background(), dsn, 4, 1, time.Hour)
	if err != nil {
		logger.Fatalf("pool: %v", err)
	}
	testDB, err = OpenGorm(pool, logger)
	if err != nil {
		logger.Fatalf("gorm: %v", err)
	}
	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE user_roles, users, roles").Error)
}

func TestIntegration_UserLifecycle(t *testing.T) {
	resetTables(t)
	ctx := entity.WithActor(context.Background(), "it")
	users := NewUserRepository(testDB, nil)
	roles := NewRoleRepository(testDB, nil)

	admin, err := roles.Add(ctx, &entity.Role{Name: "Admin"})
	require.NoError(t, err)
	viewer, err := roles.Add(ctx, &entity.Role{Name: "Viewer"})
	require.NoError(t, err)

	u, err := users.Add(ctx, &entity.User{FirstName: "Jane", LastName: "Doe", Email: "jane@x.io", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "it", u.CreatedBy)

	exists, err := users.EmailExists(ctx, " JANE@x.io", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = users.Add(ctx, &entity.User{FirstName: "J", LastName: "D", Email: "Jane@X.io"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, users.SetRoles(ctx, u.ID, []uuid.UUID{admin.ID, uuid.New()}))
	require.NoError(t, users.SetRoles(ctx, u.ID, []uuid.UUID{admin.ID, viewer.ID}))
	got, err := users.GetWithRoles(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got.UserRoles, 2)
	for _, ur := range got.UserRoles {
		require.NotNil(t, ur.Role)
	}

	got.LastName = "Smith"
	got.CreatedDate = time.Time{}
	updated, err := users.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.LastName)
	assert.False(t, updated.CreatedDate.IsZero())
	require.NotNil(t, updated.UpdatedBy)

	found, err := users.Query().
		Where(repository.ContainsFold{Columns: []string{entity.UserColLastName}, Term: "MIT"}).
		OrderBy(repository.Desc(entity.ColCreatedDate)).
		Find(ctx)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	removed, err := users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	var links int64
	require.NoError(t, testDB.Model(&entity.UserRole{}).Count(&links).Error)
	assert.Zero(t, links)
}
