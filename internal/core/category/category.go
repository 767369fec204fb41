package category

import "time"

// Category groups titles by medium (e.g. "Films", "Books", "Music").
//
// The slug is the public identifier: routes address a category by slug and
// titles reference it by slug on write.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field identifiers used in validation errors.
const (
	FieldName = "name"
	FieldSlug = "slug"
)
