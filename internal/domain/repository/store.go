package repository

import "context"

// Store is the persistence contract every entity repository satisfies.
// Each mutating call commits its own unit of work.
type Store[E any, K comparable] interface {
	// List returns every row visible through the store's default filters.
	List(ctx context.Context) ([]*E, error)
	// Query starts a composable, lazily executed query over E.
	Query() Query[E]
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id K) (*E, error)
	Add(ctx context.Context, e *E) (*E, error)
	// Update returns nil, nil when the row does not exist.
	Update(ctx context.Context, e *E) (*E, error)
	// Delete reports whether a row was removed. A missing id is not an error.
	Delete(ctx context.Context, id K) (bool, error)
}
