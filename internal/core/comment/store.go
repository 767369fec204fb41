package comment

import "context"

// Repository defines the data access contract for comments. Lookups are
// scoped to a review: a comment reached through the wrong review does not
// exist.
type Repository interface {
	// ListByReview returns one page of a review's comments, oldest first,
	// plus the unpaginated total.
	ListByReview(context context.Context, reviewID int64, limit, offset int) ([]Comment, int, error)

	// GetByID returns the comment only when it belongs to the given review.
	GetByID(context context.Context, reviewID, commentID int64) (*Comment, error)

	// Create persists a new comment, filling ID and CreatedAt.
	Create(context context.Context, comment *Comment) error

	// Update rewrites the comment's text.
	Update(context context.Context, comment *Comment) error

	// Delete removes the comment.
	Delete(context context.Context, reviewID, commentID int64) error
}
