package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

type roleCrud = CrudService[entity.Role, RoleItem, RoleItem, RoleWrite, RoleWrite]

// RoleService exposes roles read-only; every mutation fails with ErrRolesSystemManaged.
type RoleService struct {
	*roleCrud
	Roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) *RoleService {
	crud := NewCrudService("roles", roles, Mapper[entity.Role, RoleItem, RoleItem, RoleWrite, RoleWrite]{
		ToListItem:  toRoleItem,
		ToDetail:    toRoleItem,
		FromCreate:  func(in RoleWrite) *entity.Role { return &entity.Role{Name: in.Name} },
		ApplyUpdate: func(in RoleWrite, r *entity.Role) { r.Name = in.Name },
	})
	crud.ListQuery = func(q repository.Query[entity.Role], _ PagingRequest) repository.Query[entity.Role] {
		return q.OrderBy(repository.Asc(entity.RoleColName), repository.Asc(entity.ColID))
	}
	return &RoleService{roleCrud: crud, Roles: roles}
}

// List returns every role ordered by name.
func (s *RoleService) List(ctx context.Context) ([]RoleItem, error) {
	s.count("list")
	rows, err := s.Roles.Query().OrderBy(repository.Asc(entity.RoleColName)).Find(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRoleItem(r))
	}
	return out, nil
}

func (s *RoleService) Create(context.Context, RoleWrite) (RoleItem, error) {
	return RoleItem{}, ErrRolesSystemManaged
}

func (s *RoleService) Update(context.Context, uuid.UUID, RoleWrite) (*RoleItem, error) {
	return nil, ErrRolesSystemManaged
}

func (s *RoleService) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, ErrRolesSystemManaged
}

func toRoleItem(r *entity.Role) RoleItem {
	return RoleItem{ID: r.ID, Name: r.Name}
}
