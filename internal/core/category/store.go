package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {
	// List returns one page of categories plus the unpaginated total.
	// A non-empty search narrows the result by name or slug substring.
	List(context context.Context, search string, limit, offset int) ([]Category, int, error)

	// GetBySlug returns the category with the given slug.
	GetBySlug(context context.Context, slug string) (*Category, error)

	// Create persists a new category. A duplicate slug surfaces as a Conflict.
	Create(context context.Context, category *Category) error

	// DeleteBySlug removes the category. Titles referencing it keep existing
	// with their category cleared (ON DELETE SET NULL).
	DeleteBySlug(context context.Context, slug string) error
}
