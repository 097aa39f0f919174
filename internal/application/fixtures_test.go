package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/memory"
)

func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newMemoryDB() *memory.DB { return memory.NewDB(tickingClock()) }

// mockRoleStore is a testify mock of the role store; Query delegates to Count/Find.
type mockRoleStore struct {
	mock.Mock
}

var _ repository.RoleRepository = (*mockRoleStore)(nil)

func (m *mockRoleStore) List(ctx context.Context) ([]*entity.Role, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*entity.Role)
	return rows, args.Error(1)
}

func (m *mockRoleStore) Query() repository.Query[entity.Role] {
	return repository.NewQuery[entity.Role](m)
}

func (m *mockRoleStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Role)
	return r, args.Error(1)
}

func (m *mockRoleStore) Add(ctx context.Context, r *entity.Role) (*entity.Role, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(*entity.Role)
	return out, args.Error(1)
}

func (m *mockRoleStore) Update(ctx context.Context, r *entity.Role) (*entity.Role, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(*entity.Role)
	return out, args.Error(1)
}

func (m *mockRoleStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoleStore) Count(ctx context.Context, c repository.Criteria) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRoleStore) Find(ctx context.Context, c repository.Criteria) ([]*entity.Role, error) {
	args := m.Called(ctx, c)
	rows, _ := args.Get(0).([]*entity.Role)
	return rows, args.Error(1)
}

// recordingNotifier collects every event it receives.
type recordingNotifier struct {
	events []UserEvent
	err    error
}

func (n *recordingNotifier) NotifyUser(_ context.Context, ev UserEvent) error {
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) types() []UserEventType {
	out := make([]UserEventType, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}
