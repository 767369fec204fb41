package title

import "context"

// ListFilter narrows a title listing. Zero values mean "no constraint".
type ListFilter struct {
	Name         string   // substring match on name
	Year         *int     // exact release year
	CategorySlug string   // exact category slug
	GenreSlugs   []string // titles carrying any of these genres
}

// Repository defines the data access contract for titles.
//
// Deleting a category leaves its titles uncategorized; such titles carry a
// categoryID of 0 through this interface, stored as NULL.
type Repository interface {
	// List returns one page of titles with category, genres and rating
	// populated, plus the unpaginated total.
	List(context context.Context, filter ListFilter, limit, offset int) ([]Title, int, error)

	// GetByID returns a single fully populated title.
	GetByID(context context.Context, id int64) (*Title, error)

	// Exists reports whether a title with the given id exists. Cheaper
	// than GetByID when only the parent check matters.
	Exists(context context.Context, id int64) (bool, error)

	// ExistsDuplicate reports whether another title (excluding excludeID,
	// 0 to exclude nothing) already has this name, year and category.
	// categoryID 0 matches uncategorized titles.
	ExistsDuplicate(context context.Context, name string, year int, categoryID int64, excludeID int64) (bool, error)

	// Create persists the title and its genre associations in one
	// transaction, filling ID and CreatedAt.
	Create(context context.Context, title *Title, categoryID int64, genreIDs []int64) error

	// Update rewrites the title row and, when replaceGenres is set,
	// replaces its genre associations with genreIDs. categoryID 0 keeps
	// the title uncategorized.
	Update(context context.Context, title *Title, categoryID int64, genreIDs []int64, replaceGenres bool) error

	// Delete removes the title. Reviews and comments cascade.
	Delete(context context.Context, id int64) error
}
