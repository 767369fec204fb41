package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply to a review. Unlike reviews there is no per-user cap:
// a user may comment on the same review any number of times.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"-"`
	AuthorID  uuid.UUID `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

const FieldText = "text"
