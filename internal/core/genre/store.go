package genre

import "context"

// Repository defines the data access contract for genres.
type Repository interface {
	// List returns one page of genres plus the unpaginated total.
	// A non-empty search narrows the result by name or slug substring.
	List(context context.Context, search string, limit, offset int) ([]Genre, int, error)

	// GetBySlug returns the genre with the given slug.
	GetBySlug(context context.Context, slug string) (*Genre, error)

	// Create persists a new genre. A duplicate slug surfaces as a Conflict.
	Create(context context.Context, genre *Genre) error

	// DeleteBySlug removes the genre and its join rows (ON DELETE CASCADE).
	DeleteBySlug(context context.Context, slug string) error
}
