package genre

import "time"

// Genre is a thematic label attached to titles (e.g. "drama", "comedy").
// A title carries any number of genres through the core.title_genre join table.
type Genre struct {
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
