package repository

import (
	"context"
	"slices"
)

// Filter is a storage-neutral predicate. Implementations live in this package only.
type Filter interface {
	isFilter()
}

// Equals matches rows whose Column equals Value.
type Equals struct {
	Column string
	Value  any
}

// ContainsFold matches rows where any of Columns contains Term, ignoring case.
type ContainsFold struct {
	Columns []string
	Term    string
}

func (Equals) isFilter()       {}
func (ContainsFold) isFilter() {}

// Order sorts by Column, ascending unless Desc.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Criteria is the materialized description of a Query handed to a Finder.
// Limit 0 means no limit.
type Criteria struct {
	Filters  []Filter
	Orders   []Order
	Includes []string
	Offset   int
	Limit    int
}

// Finder executes Criteria against a concrete storage.
type Finder[E any] interface {
	Count(ctx context.Context, c Criteria) (int64, error)
	Find(ctx context.Context, c Criteria) ([]*E, error)
}

// Query is an immutable query builder; every method returns a new value,
// so a handle can be shared and extended without affecting the original.
type Query[E any] struct {
	finder Finder[E]
	c      Criteria
}

func NewQuery[E any](f Finder[E], defaults ...Filter) Query[E] {
	return Query[E]{finder: f, c: Criteria{Filters: slices.Clone(defaults)}}
}

func (q Query[E]) Where(filters ...Filter) Query[E] {
	q.c.Filters = append(slices.Clone(q.c.Filters), filters...)
	return q
}

// OrderBy appends sort keys after any existing ones.
func (q Query[E]) OrderBy(orders ...Order) Query[E] {
	q.c.Orders = append(slices.Clone(q.c.Orders), orders...)
	return q
}

// Include eager-loads the named relations (e.g. "UserRoles.Role").
func (q Query[E]) Include(relations ...string) Query[E] {
	q.c.Includes = append(slices.Clone(q.c.Includes), relations...)
	return q
}

func (q Query[E]) Skip(n int) Query[E] {
	if n < 0 {
		n = 0
	}
	q.c.Offset = n
	return q
}

func (q Query[E]) Take(n int) Query[E] {
	if n < 0 {
		n = 0
	}
	q.c.Limit = n
	return q
}

// Criteria returns a copy of the accumulated criteria.
func (q Query[E]) Criteria() Criteria {
	return Criteria{
		Filters:  slices.Clone(q.c.Filters),
		Orders:   slices.Clone(q.c.Orders),
		Includes: slices.Clone(q.c.Includes),
		Offset:   q.c.Offset,
		Limit:    q.c.Limit,
	}
}

// Count returns the number of matching rows; ordering, includes and paging are ignored.
func (q Query[E]) Count(ctx context.Context) (int64, error) {
	return q.finder.Count(ctx, Criteria{Filters: slices.Clone(q.c.Filters)})
}

func (q Query[E]) Find(ctx context.Context) ([]*E, error) {
	return q.finder.Find(ctx, q.Criteria())
}
