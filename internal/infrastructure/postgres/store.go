package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// Store is the gorm implementation of repository.Store for one table.
// columns whitelists the names criteria may reference.
type Store[E any] struct {
	db       *gorm.DB
	columns  map[string]struct{}
	defaults []repository.Filter
	now      func() time.Time
}

func newStore[E any](db *gorm.DB, now func() time.Time, columns []string, defaults ...repository.Filter) *Store[E] {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Store[E]{db: db, columns: set, defaults: defaults, now: now}
}

var auditColumns = []string{entity.ColID, entity.ColCreatedBy, entity.ColCreatedDate, entity.ColUpdatedDate}

func auditOf[E any](e *E) *entity.Audit {
	a, ok := any(e).(entity.Audited)
	if !ok {
		panic(fmt.Sprintf("postgres: %T does not embed entity.Audit", e))
	}
	return a.AuditInfo()
}

func (s *Store[E]) List(ctx context.Context) ([]*E, error) {
	return s.Find(ctx, repository.Criteria{Filters: s.defaults})
}

func (s *Store[E]) Query() repository.Query[E] {
	return repository.NewQuery[E](s, s.defaults...)
}

func (s *Store[E]) GetByID(ctx context.Context, id uuid.UUID) (*E, error) {
	tx, err := s.where(s.db.WithContext(ctx), s.defaults)
	if err != nil {
		return nil, err
	}
	var e E
	err = tx.Where(byID(id)).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return &e, nil
}

func (s *Store[E]) Add(ctx context.Context, e *E) (*E, error) {
	auditOf(e).MarkCreated(entity.ActorFrom(ctx), s.now())
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Update writes every column except the key and creation fields, then re-reads the row.
func (s *Store[E]) Update(ctx context.Context, e *E) (*E, error) {
	a := auditOf(e)
	a.MarkUpdated(entity.ActorFrom(ctx), s.now())

	tx, err := s.where(s.db.WithContext(ctx), s.defaults)
	if err != nil {
		return nil, err
	}
	res := tx.Model(e).
		Select("*").
		Omit(entity.ColID, entity.ColCreatedBy, entity.ColCreatedDate, clause.Associations).
		Updates(e)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	// Read back without default filters: the update itself may have hidden the row.
	var out E
	if err := s.db.WithContext(ctx).Where(byID(a.ID)).Take(&out).Error; err != nil {
		return nil, fmt.Errorf("reload %s: %w", a.ID, err)
	}
	return &out, nil
}

func (s *Store[E]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := s.where(s.db.WithContext(ctx), s.defaults)
	if err != nil {
		return false, err
	}
	res := tx.Where(byID(id)).Delete(new(E))
	if res.Error != nil {
		return false, fmt.Errorf("delete %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count implements repository.Finder.
func (s *Store[E]) Count(ctx context.Context, c repository.Criteria) (int64, error) {
	tx, err := s.where(s.db.WithContext(ctx).Model(new(E)), c.Filters)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Find implements repository.Finder.
func (s *Store[E]) Find(ctx context.Context, c repository.Criteria) ([]*E, error) {
	tx, err := s.where(s.db.WithContext(ctx), c.Filters)
	if err != nil {
		return nil, err
	}
	for _, o := range c.Orders {
		if err := s.check(o.Column); err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	for _, rel := range c.Includes {
		tx = tx.Preload(rel)
	}
	if c.Offset > 0 {
		tx = tx.Offset(c.Offset)
	}
	if c.Limit > 0 {
		tx = tx.Limit(c.Limit)
	}
	out := []*E{}
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	return out, nil
}

func (s *Store[E]) check(column string) error {
	if _, ok := s.columns[column]; !ok {
		return fmt.Errorf("postgres: unknown column %q", column)
	}
	return nil
}

func (s *Store[E]) where(tx *gorm.DB, filters []repository.Filter) (*gorm.DB, error) {
	for _, f := range filters {
		switch f := f.(type) {
		case repository.Equals:
			if err := s.check(f.Column); err != nil {
				return nil, err
			}
			tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
		case repository.ContainsFold:
			pattern := "%" + escapeLike(strings.ToLower(f.Term)) + "%"
			exprs := make([]clause.Expression, 0, len(f.Columns))
			for _, col := range f.Columns {
				if err := s.check(col); err != nil {
					return nil, err
				}
				exprs = append(exprs, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: col}, pattern}})
			}
			if len(exprs) > 0 {
				tx = tx.Where(clause.Or(exprs...))
			}
		default:
			return nil, fmt.Errorf("postgres: unsupported filter %T", f)
		}
	}
	return tx, nil
}

func byID(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: entity.ColID}, Value: id}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards; backslash is the default escape in postgres.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, repository.ErrDuplicate)
	}
	return err
}
