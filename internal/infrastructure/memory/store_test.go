package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func addUser(t *testing.T, repo *UserRepository, first, last, email string) *entity.User {
	t.Helper()
	u, err := repo.Add(context.Background(), &entity.User{FirstName: first, LastName: last, Email: email, Active: true})
	require.NoError(t, err)
	return u
}

func TestStore_AddStampsAudit(t *testing.T) {
	db := NewDB(tickingClock())
	ctx := entity.WithActor(context.Background(), "alice")

	u, err := db.Users().Add(ctx, &entity.User{FirstName: "Jane", LastName: "Doe", Email: "jane@x.io"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "alice", u.CreatedBy)
	assert.False(t, u.CreatedDate.IsZero())
	assert.Nil(t, u.UpdatedBy)
	assert.Nil(t, u.UpdatedDate)
}

func TestStore_UpdateKeepsCreationFields(t *testing.T) {
	db := NewDB(tickingClock())
	users := db.Users()
	u := addUser(t, users, "Jane", "Doe", "jane@x.io")

	patch := *u
	patch.FirstName = "Janet"
	patch.CreatedBy = "mallory"
	patch.CreatedDate = time.Time{}

	got, err := users.Update(entity.WithActor(context.Background(), "bob"), &patch)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Janet", got.FirstName)
	assert.Equal(t, u.CreatedBy, got.CreatedBy)
	assert.Equal(t, u.CreatedDate, got.CreatedDate)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, "bob", *got.UpdatedBy)
	require.NotNil(t, got.UpdatedDate)
	assert.True(t, got.UpdatedDate.After(got.CreatedDate))
}

func TestStore_UpdateMissingReturnsNil(t *testing.T) {
	db := NewDB(nil)
	got, err := db.Users().Update(context.Background(), &entity.User{Audit: entity.Audit{ID: uuid.New()}})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ReturnsCopies(t *testing.T) {
	db := NewDB(nil)
	users := db.Users()
	u := addUser(t, users, "Jane", "Doe", "jane@x.io")
	u.FirstName = "changed"

	got, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestStore_SoftDeletedInvisible(t *testing.T) {
	db := NewDB(nil)
	users := db.Users()
	ctx := context.Background()
	keep := addUser(t, users, "Keep", "Me", "keep@x.io")
	gone := addUser(t, users, "Gone", "Away", "gone@x.io")
	gone.IsDeleted = true
	_, err := users.Update(ctx, gone)
	require.NoError(t, err)

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	got, err := users.GetByID(ctx, gone.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := users.Query().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	removed, err := users.Delete(ctx, gone.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	exists, err := users.EmailExists(ctx, "gone@x.io", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_QueryFilterSortPage(t *testing.T) {
	db := NewDB(tickingClock())
	users := db.Users()
	ctx := context.Background()
	addUser(t, users, "Carol", "Zed", "carol@x.io")
	addUser(t, users, "alice", "Young", "alice@x.io")
	addUser(t, users, "Bob", "Xavier", "bob@other.io")

	q := users.Query().
		Where(repository.ContainsFold{Columns: []string{entity.UserColEmail}, Term: "X.IO"}).
		OrderBy(repository.Asc(entity.UserColLastName))

	n, err := q.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	page, err := q.Skip(1).Take(1).Find(ctx)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Carol", page[0].FirstName)

	byDate, err := users.Query().OrderBy(repository.Desc(entity.ColCreatedDate)).Find(ctx)
	require.NoError(t, err)
	require.Len(t, byDate, 3)
	assert.Equal(t, "Bob", byDate[0].FirstName)

	empty, err := q.Skip(10).Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_SortIgnoresCase(t *testing.T) {
	db := NewDB(tickingClock())
	users := db.Users()
	addUser(t, users, "bob", "B", "bob@x.io")
	addUser(t, users, "Alice", "A", "Alice@x.io")
	addUser(t, users, "carl", "C", "carl@x.io")
	addUser(t, users, "Bob", "B", "Bob@y.io")

	rows, err := users.Query().OrderBy(repository.Asc(entity.UserColFirstName)).Find(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, u := range rows {
		names = append(names, u.FirstName)
	}
	assert.Equal(t, []string{"Alice", "Bob", "bob", "carl"}, names)
}

func TestStore_StampsAtColumnPrecision(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 123456789, time.UTC)
	db := NewDB(func() time.Time { return at })
	users := db.Users()
	u := addUser(t, users, "Jane", "Doe", "jane@x.io")
	assert.Equal(t, 123456000, u.CreatedDate.Nanosecond())

	got, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, u.CreatedDate.Equal(got.CreatedDate))
}

func TestStore_UnknownColumn(t *testing.T) {
	db := NewDB(nil)
	_, err := db.Users().Query().OrderBy(repository.Asc("nope")).Find(context.Background())
	assert.Error(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	db := NewDB(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.Users().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
