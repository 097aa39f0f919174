package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// Columns exposes entity fields by column name so criteria can be evaluated in Go.
type Columns[E any] map[string]func(*E) any

// schema describes how a table stores and re-hydrates its rows.
type schema[E any] struct {
	columns  Columns[E]
	defaults []repository.Filter
	// detach clears navigation fields before a row is stored.
	detach func(*E)
	// hydrate fills requested relations on a copy; runs under the read lock.
	hydrate func(*E, []string)
	// onDelete runs under the write lock after a row is removed.
	onDelete func(uuid.UUID)
}

// Store is a mutex-guarded table implementing repository.Store.
// Rows are copied on the way in and out, callers never share memory with the table.
type Store[E any] struct {
	mu     *sync.RWMutex
	rows   map[uuid.UUID]*E
	order  []uuid.UUID
	schema schema[E]
	now    func() time.Time
}

func newStore[E any](mu *sync.RWMutex, s schema[E], now func() time.Time) *Store[E] {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Store[E]{mu: mu, rows: map[uuid.UUID]*E{}, schema: s, now: now}
}

var _ repository.Store[entity.Role, uuid.UUID] = (*Store[entity.Role])(nil)

func auditOf[E any](e *E) *entity.Audit {
	a, ok := any(e).(entity.Audited)
	if !ok {
		panic(fmt.Sprintf("memory: %T does not embed entity.Audit", e))
	}
	return a.AuditInfo()
}

func (s *Store[E]) List(ctx context.Context) ([]*E, error) {
	return s.Find(ctx, repository.Criteria{Filters: s.schema.defaults})
}

func (s *Store[E]) Query() repository.Query[E] {
	return repository.NewQuery[E](s, s.schema.defaults...)
}

func (s *Store[E]) GetByID(ctx context.Context, id uuid.UUID) (*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, err := s.visible(id)
	if err != nil || row == nil {
		return nil, err
	}
	return s.copyOut(row, nil), nil
}

func (s *Store[E]) Add(ctx context.Context, e *E) (*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.copyIn(e)
	auditOf(row).MarkCreated(entity.ActorFrom(ctx), s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	id := auditOf(row).ID
	if _, dup := s.rows[id]; dup {
		return nil, fmt.Errorf("memory: id %s: %w", id, repository.ErrDuplicate)
	}
	s.rows[id] = row
	s.order = append(s.order, id)
	return s.copyOut(row, nil), nil
}

func (s *Store[E]) Update(ctx context.Context, e *E) (*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.copyIn(e)
	id := auditOf(row).ID

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.visible(id)
	if err != nil || existing == nil {
		return nil, err
	}
	prev := auditOf(existing)
	a := auditOf(row)
	a.CreatedBy = prev.CreatedBy
	a.CreatedDate = prev.CreatedDate
	a.MarkUpdated(entity.ActorFrom(ctx), s.now())
	s.rows[id] = row
	return s.copyOut(row, nil), nil
}

func (s *Store[E]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.visible(id)
	if err != nil || row == nil {
		return false, err
	}
	s.remove(id)
	return true, nil
}

func (s *Store[E]) remove(id uuid.UUID) {
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.schema.onDelete != nil {
		s.schema.onDelete(id)
	}
}

// Count implements repository.Finder.
func (s *Store[E]) Count(ctx context.Context, c repository.Criteria) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.filter(c.Filters)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// Find implements repository.Finder.
func (s *Store[E]) Find(ctx context.Context, c repository.Criteria) ([]*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.filter(c.Filters)
	if err != nil {
		return nil, err
	}
	if err := s.sort(rows, c.Orders); err != nil {
		return nil, err
	}
	if c.Offset >= len(rows) {
		rows = nil
	} else {
		rows = rows[c.Offset:]
	}
	if c.Limit > 0 && len(rows) > c.Limit {
		rows = rows[:c.Limit]
	}
	out := make([]*E, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.copyOut(row, c.Includes))
	}
	return out, nil
}

// visible returns the stored row for id when it passes the default filters. Caller holds the lock.
func (s *Store[E]) visible(id uuid.UUID) (*E, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	ok, err := s.match(row, s.schema.defaults)
	if err != nil || !ok {
		return nil, err
	}
	return row, nil
}

func (s *Store[E]) filter(filters []repository.Filter) ([]*E, error) {
	out := make([]*E, 0, len(s.order))
	for _, id := range s.order {
		row := s.rows[id]
		ok, err := s.match(row, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Store[E]) column(name string) (func(*E) any, error) {
	get, ok := s.schema.columns[name]
	if !ok {
		return nil, fmt.Errorf("memory: unknown column %q", name)
	}
	return get, nil
}

func (s *Store[E]) match(row *E, filters []repository.Filter) (bool, error) {
	for _, f := range filters {
		switch f := f.(type) {
		case repository.Equals:
			get, err := s.column(f.Column)
			if err != nil {
				return false, err
			}
			if get(row) != f.Value {
				return false, nil
			}
		case repository.ContainsFold:
			term := strings.ToLower(f.Term)
			hit := false
			for _, col := range f.Columns {
				get, err := s.column(col)
				if err != nil {
					return false, err
				}
				if v, ok := get(row).(string); ok && strings.Contains(strings.ToLower(v), term) {
					hit = true
					break
				}
			}
			if !hit {
				return false, nil
			}
		default:
			return false, fmt.Errorf("memory: unsupported filter %T", f)
		}
	}
	return true, nil
}

func (s *Store[E]) sort(rows []*E, orders []repository.Order) error {
	getters := make([]func(*E) any, len(orders))
	for i, o := range orders {
		get, err := s.column(o.Column)
		if err != nil {
			return err
		}
		getters[i] = get
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for k, o := range orders {
			c := compare(getters[k](rows[i]), getters[k](rows[j]))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return nil
}

func (s *Store[E]) copyIn(e *E) *E {
	row := new(E)
	*row = *e
	if s.schema.detach != nil {
		s.schema.detach(row)
	}
	return row
}

func (s *Store[E]) copyOut(row *E, includes []string) *E {
	out := new(E)
	*out = *row
	if len(includes) > 0 && s.schema.hydrate != nil {
		s.schema.hydrate(out, includes)
	}
	return out
}

// compare orders the value kinds exposed by Columns; nil sorts first.
// Strings compare case-insensitively, then byte-wise, close to postgres' default collation.
func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		y := b.(string)
		if c := strings.Compare(strings.ToLower(x), strings.ToLower(y)); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case time.Time:
		return x.Compare(b.(time.Time))
	case *time.Time:
		y := b.(*time.Time)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return -1
		case y == nil:
			return 1
		default:
			return x.Compare(*y)
		}
	case uuid.UUID:
		return strings.Compare(x.String(), b.(uuid.UUID).String())
	case int:
		return x - b.(int)
	}
	return 0
}
