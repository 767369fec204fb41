package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for reviews. Every lookup is
// scoped to a title: a review reached through the wrong title does not exist.
type Repository interface {
	// ListByTitle returns one page of a title's reviews, newest first,
	// plus the unpaginated total.
	ListByTitle(context context.Context, titleID int64, limit, offset int) ([]Review, int, error)

	// GetByID returns the review only when it belongs to the given title.
	GetByID(context context.Context, titleID, reviewID int64) (*Review, error)

	// Exists reports whether the review belongs to the given title.
	Exists(context context.Context, titleID, reviewID int64) (bool, error)

	// ExistsByAuthor reports whether the author already reviewed the title.
	ExistsByAuthor(context context.Context, titleID int64, authorID uuid.UUID) (bool, error)

	// Create persists a new review, filling ID and CreatedAt.
	Create(context context.Context, review *Review) error

	// Update rewrites the review's text and score.
	Update(context context.Context, review *Review) error

	// Delete removes the review. Its comments cascade.
	Delete(context context.Context, titleID, reviewID int64) error
}
