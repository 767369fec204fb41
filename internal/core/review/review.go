package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's scored opinion on a title. A user gets at most one
// review per title; the average of all scores becomes the title's rating.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"-"`
	AuthorID  uuid.UUID `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Field identifiers used in validation errors.
const (
	FieldText  = "text"
	FieldScore = "score"
)
