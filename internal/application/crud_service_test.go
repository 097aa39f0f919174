package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

var roleMapper = Mapper[entity.Role, RoleItem, RoleItem, RoleWrite, RoleWrite]{
	ToListItem:  toRoleItem,
	ToDetail:    toRoleItem,
	FromCreate:  func(in RoleWrite) *entity.Role { return &entity.Role{Name: in.Name} },
	ApplyUpdate: func(in RoleWrite, r *entity.Role) { r.Name = in.Name },
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 5, 2, 5},
		{1, 500, 1, 500},
	}
	for _, tt := range tests {
		p, s := NormalizePaging(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantSize, s)
	}
}

func TestCrudService_ListPaged(t *testing.T) {
	ctx := context.Background()
	roles := newMemoryDB().Roles()
	for i := 0; i < 25; i++ {
		_, err := roles.Add(ctx, &entity.Role{Name: fmt.Sprintf("role-%02d", i)})
		require.NoError(t, err)
	}
	svc := NewCrudService("roles", roles, roleMapper)

	first, err := svc.ListPaged(ctx, PagingRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 20, first.PageSize)
	assert.EqualValues(t, 25, first.TotalCount)
	require.Len(t, first.Items, 20)
	assert.Equal(t, "role-00", first.Items[0].Name)

	second, err := svc.ListPaged(ctx, PagingRequest{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 25, second.TotalCount)
	require.Len(t, second.Items, 5)
	assert.Equal(t, "role-20", second.Items[0].Name)

	again, err := svc.ListPaged(ctx, PagingRequest{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, second, again)

	beyond, err := svc.ListPaged(ctx, PagingRequest{Page: 9, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 25, beyond.TotalCount)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestCrudService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewCrudService("roles", newMemoryDB().Roles(), roleMapper)

	created, err := svc.Create(ctx, RoleWrite{Name: "Ops"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ops", got.Name)

	updated, err := svc.Update(ctx, created.ID, RoleWrite{Name: "Operations"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Operations", updated.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []RoleItem{{ID: created.ID, Name: "Operations"}}, all)

	removed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCrudService_AbsentIsNil(t *testing.T) {
	ctx := context.Background()
	svc := NewCrudService("roles", newMemoryDB().Roles(), roleMapper)

	got, err := svc.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := svc.Update(ctx, uuid.New(), RoleWrite{Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestCrudService_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("storage unavailable")
	store := new(mockRoleStore)
	store.On("Count", ctx, mock.Anything).Return(int64(0), boom).Once()
	store.On("List", ctx).Return(nil, boom).Once()
	store.On("Add", ctx, mock.AnythingOfType("*entity.Role")).Return(nil, boom).Once()
	store.On("GetByID", ctx, mock.Anything).Return(nil, boom).Once()
	store.On("Delete", ctx, mock.Anything).Return(false, boom).Once()
	svc := NewCrudService("roles", store, roleMapper)

	_, err := svc.ListPaged(ctx, PagingRequest{})
	assert.Same(t, boom, err)
	_, err = svc.List(ctx)
	assert.Same(t, boom, err)
	_, err = svc.Create(ctx, RoleWrite{Name: "x"})
	assert.Same(t, boom, err)
	_, err = svc.Get(ctx, uuid.New())
	assert.Same(t, boom, err)
	_, err = svc.Delete(ctx, uuid.New())
	assert.Same(t, boom, err)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestCrudService_ListPagedUsesHookAndCountsWithoutPaging(t *testing.T) {
	ctx := context.Background()
	store := new(mockRoleStore)
	store.On("Count", ctx, mock.MatchedBy(func(c repository.Criteria) bool {
		return len(c.Orders) == 0 && c.Offset == 0 && c.Limit == 0 && len(c.Filters) == 1
	})).Return(int64(7), nil).Once()
	store.On("Find", ctx, mock.MatchedBy(func(c repository.Criteria) bool {
		return c.Offset == 3 && c.Limit == 3 && len(c.Orders) == 1 && c.Orders[0].Column == entity.RoleColName
	})).Return([]*entity.Role{{Name: "a"}}, nil).Once()

	svc := NewCrudService("roles", store, roleMapper)
	svc.ListQuery = func(q repository.Query[entity.Role], _ PagingRequest) repository.Query[entity.Role] {
		return q.Where(repository.Equals{Column: entity.RoleColName, Value: "a"}).OrderBy(repository.Asc(entity.RoleColName))
	}

	res, err := svc.ListPaged(ctx, PagingRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 7, res.TotalCount)
	assert.Len(t, res.Items, 1)
	store.AssertExpectations(t)
}

func TestCrudService_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	store := new(mockRoleStore)
	dup := fmt.Errorf("ux_roles_name: %w", repository.ErrDuplicate)
	store.On("Add", ctx, mock.Anything).Return(nil, dup).Once()
	svc := NewCrudService("roles", store, roleMapper)

	_, err := svc.Create(ctx, RoleWrite{Name: "Admin"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
