package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/platform/validate"
)

// ReviewChecker is the slice of the review repository comments need: it
// reports whether a review exists under a given title, so a comment reached
// through a mismatched title/review pair is treated as absent.
type ReviewChecker interface {
	Exists(context context.Context, titleID, reviewID int64) (bool, error)
}

type Service struct {
	repo    Repository
	reviews ReviewChecker
	logger  *slog.Logger
}

func NewService(repo Repository, reviews ReviewChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

// List returns one page of the review's comments.
func (service *Service) List(context context.Context, titleID, reviewID int64, limit, offset int) ([]Comment, int, error) {
	if err := service.checkReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(context, reviewID, limit, offset)
}

// Get returns one comment scoped to its review.
func (service *Service) Get(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if err := service.checkReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, reviewID, commentID)
}

// Create validates and persists a new comment by the given author.
func (service *Service) Create(context context.Context, titleID, reviewID int64, authorID uuid.UUID, authorName, text string) (*Comment, error) {
	if err := service.checkReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Author:   authorName,
		Text:     text,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("review_id", reviewID),
		slog.Int64("comment_id", comment.ID),
		slog.String("author", authorName))

	return comment, nil
}

// Patch rewrites a comment's text. The author may edit their own comment;
// moderators and admins may edit any.
func (service *Service) Patch(context context.Context, titleID, reviewID, commentID int64, actor sec.Actor, actorID uuid.UUID, text *string) (*Comment, error) {
	if err := service.checkReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	current, err := service.repo.GetByID(context, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	isOwner := current.AuthorID == actorID
	if !sec.Allowed(actor, sec.ActionUpdate, sec.ResourceComment, isOwner) {
		return nil, apperr.Forbidden("You may only edit your own comments")
	}

	if text != nil {
		current.Text = *text
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, current.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated",
		slog.Int64("review_id", reviewID),
		slog.Int64("comment_id", commentID))

	return current, nil
}

// Delete removes a comment under the same ownership rules as Patch.
func (service *Service) Delete(context context.Context, titleID, reviewID, commentID int64, actor sec.Actor, actorID uuid.UUID) error {
	if err := service.checkReview(context, titleID, reviewID); err != nil {
		return err
	}

	current, err := service.repo.GetByID(context, reviewID, commentID)
	if err != nil {
		return err
	}

	isOwner := current.AuthorID == actorID
	if !sec.Allowed(actor, sec.ActionDelete, sec.ResourceComment, isOwner) {
		return apperr.Forbidden("You may only delete your own comments")
	}

	if err := service.repo.Delete(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("comment_id", commentID))

	return nil
}

func (service *Service) checkReview(context context.Context, titleID, reviewID int64) error {
	exists, err := service.reviews.Exists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
