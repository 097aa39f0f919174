package application

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

type userCrud = CrudService[entity.User, UserListItem, UserDetail, UserCreate, UserUpdate]

// UserService adds email uniqueness, role assignment and role-aware reads
// on top of the generic CRUD service.
type UserService struct {
	*userCrud
	Users     repository.UserRepository
	Logger    *logrus.Logger
	Notifiers []UserNotifier
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger, notifiers ...UserNotifier) *UserService {
	crud := NewCrudService("users", users, Mapper[entity.User, UserListItem, UserDetail, UserCreate, UserUpdate]{
		ToListItem:  toUserListItem,
		ToDetail:    toUserDetail,
		FromCreate:  userFromCreate,
		ApplyUpdate: applyUserUpdate,
	})
	crud.ListQuery = userListQuery
	return &UserService{userCrud: crud, Users: users, Logger: logger, Notifiers: notifiers}
}

func (s *UserService) Create(ctx context.Context, in UserCreate) (UserDetail, error) {
	exists, err := s.Users.EmailExists(ctx, in.Email, nil)
	if err != nil {
		return UserDetail{}, err
	}
	if exists {
		return UserDetail{}, ErrEmailExists
	}

	created, err := s.userCrud.Create(ctx, in)
	if err != nil {
		return UserDetail{}, err
	}
	if len(in.RoleIDs) > 0 {
		if err := s.Users.SetRoles(ctx, created.ID, in.RoleIDs); err != nil {
			return UserDetail{}, err
		}
	}

	out := created
	full, err := s.Users.GetWithRoles(ctx, created.ID)
	if err != nil {
		return UserDetail{}, err
	}
	if full != nil {
		out = toUserDetail(full)
	}
	notify(ctx, s.Logger, s.Notifiers, newUserEvent(ctx, UserCreated, out.ID, &out))
	return out, nil
}

// Update replaces the user's fields and role set. A nil RoleIDs clears every role.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UserUpdate) (*UserDetail, error) {
	exists, err := s.Users.EmailExists(ctx, in.Email, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	updated, err := s.userCrud.Update(ctx, id, in)
	if err != nil || updated == nil {
		return nil, err
	}
	roleIDs := in.RoleIDs
	if roleIDs == nil {
		roleIDs = []uuid.UUID{}
	}
	if err := s.Users.SetRoles(ctx, id, roleIDs); err != nil {
		return nil, err
	}

	full, err := s.Users.GetWithRoles(ctx, id)
	if err != nil || full == nil {
		return nil, err
	}
	out := toUserDetail(full)
	notify(ctx, s.Logger, s.Notifiers, newUserEvent(ctx, UserUpdated, id, &out))
	return &out, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserDetail, error) {
	u, err := s.Users.GetWithRoles(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	out := toUserDetail(u)
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.userCrud.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	notify(ctx, s.Logger, s.Notifiers, newUserEvent(ctx, UserDeleted, id, nil))
	return true, nil
}

// Sort keys accepted by the paged list; a leading '-' sorts descending.
const (
	SortFirstName   = "firstName"
	SortLastName    = "lastName"
	SortEmail       = "email"
	SortCreatedDate = "createdDate"
)

func userListQuery(q repository.Query[entity.User], req PagingRequest) repository.Query[entity.User] {
	q = q.Where(repository.NotDeleted).Include(entity.UserRelRoles)

	if term := strings.TrimSpace(req.Search); term != "" {
		q = q.Where(repository.ContainsFold{
			Columns: []string{entity.UserColFirstName, entity.UserColLastName, entity.UserColEmail},
			Term:    term,
		})
	}
	return q.OrderBy(userOrders(req.Sort)...)
}

func userOrders(sort string) []repository.Order {
	sort = strings.TrimSpace(sort)
	desc := strings.HasPrefix(sort, "-")
	order := repository.Asc
	if desc {
		order = repository.Desc
	}

	var orders []repository.Order
	switch strings.TrimPrefix(sort, "-") {
	case SortFirstName:
		orders = []repository.Order{order(entity.UserColFirstName), order(entity.UserColLastName)}
	case SortLastName:
		orders = []repository.Order{order(entity.UserColLastName), order(entity.UserColFirstName)}
	case SortEmail:
		orders = []repository.Order{order(entity.UserColEmail)}
	case SortCreatedDate:
		orders = []repository.Order{order(entity.ColCreatedDate)}
	default:
		orders = []repository.Order{repository.Desc(entity.ColCreatedDate)}
	}
	// id keeps pages stable when the sort keys tie.
	return append(orders, repository.Asc(entity.ColID))
}

func roleItems(links []entity.UserRole) []RoleItem {
	out := make([]RoleItem, 0, len(links))
	for _, ur := range links {
		if ur.Role == nil {
			continue
		}
		out = append(out, RoleItem{ID: ur.RoleID, Name: ur.Role.Name})
	}
	slices.SortFunc(out, func(a, b RoleItem) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func toUserListItem(u *entity.User) UserListItem {
	return UserListItem{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Active:    u.Active,
		Roles:     roleItems(u.UserRoles),
	}
}

func toUserDetail(u *entity.User) UserDetail {
	return UserDetail{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Active:      u.Active,
		CreatedDate: u.CreatedDate,
		UpdatedDate: u.UpdatedDate,
		Roles:       roleItems(u.UserRoles),
	}
}

func userFromCreate(in UserCreate) *entity.User {
	return &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Active:    in.Active,
	}
}

func applyUserUpdate(in UserUpdate, u *entity.User) {
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = strings.TrimSpace(in.Email)
	u.Active = in.Active
}
