package title

import (
	"time"

	"github.com/critiq-app/critiq/internal/core/category"
	"github.com/critiq-app/critiq/internal/core/genre"
)

// Title is a reviewable work: a film, a book, an album. It never holds
// content itself, only the metadata reviews hang off of.
//
// Rating is the average review score rounded to one decimal, or nil when
// the title has no reviews yet. It is always derived, never stored.
type Title struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description string             `json:"description"`
	Rating      *float64           `json:"rating"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genres"`
	CreatedAt   time.Time          `json:"-"`
}

// Field identifiers used in validation errors.
const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenres   = "genres"
)
