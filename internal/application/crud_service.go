package application

import (
	"context"
	"expvar"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// opCounts is published on /api/debug/vars, keyed "<service>.<operation>".
var opCounts = expvar.NewMap("service_ops")

// Mapper converts between an entity and its DTOs. Every function is required.
type Mapper[E, L, D, C, U any] struct {
	ToListItem  func(*E) L
	ToDetail    func(*E) D
	FromCreate  func(C) *E
	ApplyUpdate func(U, *E)
}

// ListQueryFunc shapes the paged-list query: filters, includes, search and ordering.
type ListQueryFunc[E any] func(q repository.Query[E], req PagingRequest) repository.Query[E]

// CrudService implements list, paging and CRUD for any entity keyed by UUID.
// Absent rows are reported as nil results, never as errors; store errors are returned as is.
type CrudService[E, L, D, C, U any] struct {
	Name      string
	Store     repository.Store[E, uuid.UUID]
	Map       Mapper[E, L, D, C, U]
	ListQuery ListQueryFunc[E]
}

func NewCrudService[E, L, D, C, U any](name string, store repository.Store[E, uuid.UUID], m Mapper[E, L, D, C, U]) *CrudService[E, L, D, C, U] {
	return &CrudService[E, L, D, C, U]{Name: name, Store: store, Map: m}
}

// DefaultListQuery orders by creation time, oldest first, with id as tie-breaker.
func DefaultListQuery[E any](q repository.Query[E], _ PagingRequest) repository.Query[E] {
	return q.OrderBy(repository.Asc(entity.ColCreatedDate), repository.Asc(entity.ColID))
}

// NormalizePaging replaces non-positive page and size with the defaults.
func NormalizePaging(page, pageSize int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func (s *CrudService[E, L, D, C, U]) count(op string) {
	opCounts.Add(s.Name+"."+op, 1)
}

func (s *CrudService[E, L, D, C, U]) List(ctx context.Context) ([]L, error) {
	s.count("list")
	rows, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]L, 0, len(rows))
	for _, e := range rows {
		out = append(out, s.Map.ToListItem(e))
	}
	return out, nil
}

func (s *CrudService[E, L, D, C, U]) ListPaged(ctx context.Context, req PagingRequest) (PagedResult[L], error) {
	s.count("list_paged")
	req.Page, req.PageSize = NormalizePaging(req.Page, req.PageSize)

	build := s.ListQuery
	if build == nil {
		build = DefaultListQuery[E]
	}
	q := build(s.Store.Query(), req)

	total, err := q.Count(ctx)
	if err != nil {
		return PagedResult[L]{}, err
	}
	rows, err := q.Skip((req.Page - 1) * req.PageSize).Take(req.PageSize).Find(ctx)
	if err != nil {
		return PagedResult[L]{}, err
	}
	items := make([]L, 0, len(rows))
	for _, e := range rows {
		items = append(items, s.Map.ToListItem(e))
	}
	return PagedResult[L]{Page: req.Page, PageSize: req.PageSize, TotalCount: total, Items: items}, nil
}

func (s *CrudService[E, L, D, C, U]) Get(ctx context.Context, id uuid.UUID) (*D, error) {
	s.count("get")
	e, err := s.Store.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	d := s.Map.ToDetail(e)
	return &d, nil
}

func (s *CrudService[E, L, D, C, U]) Create(ctx context.Context, in C) (D, error) {
	s.count("create")
	var zero D
	saved, err := s.Store.Add(ctx, s.Map.FromCreate(in))
	if err != nil {
		return zero, asConflict(err)
	}
	return s.Map.ToDetail(saved), nil
}

func (s *CrudService[E, L, D, C, U]) Update(ctx context.Context, id uuid.UUID, in U) (*D, error) {
	s.count("update")
	e, err := s.Store.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	s.Map.ApplyUpdate(in, e)
	saved, err := s.Store.Update(ctx, e)
	if err != nil {
		return nil, asConflict(err)
	}
	if saved == nil {
		return nil, nil
	}
	d := s.Map.ToDetail(saved)
	return &d, nil
}

func (s *CrudService[E, L, D, C, U]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.count("delete")
	return s.Store.Delete(ctx, id)
}
