package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/platform/validate"
)

// TitleChecker is the slice of the title repository reviews need: parent
// existence only.
type TitleChecker interface {
	Exists(context context.Context, id int64) (bool, error)
}

type Service struct {
	repo   Repository
	titles TitleChecker
	logger *slog.Logger
}

func NewService(repo Repository, titles TitleChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// List returns one page of the title's reviews.
func (service *Service) List(context context.Context, titleID int64, limit, offset int) ([]Review, int, error) {
	if err := service.checkTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, limit, offset)
}

// Get returns one review scoped to its title.
func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.checkTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, titleID, reviewID)
}

// CreateInput holds the fields accepted when posting a review.
type CreateInput struct {
	Text  string
	Score int
}

// Create validates and persists a new review by the given author.
//
// A second review by the same author on the same title is rejected with a
// Conflict, no matter its content.
func (service *Service) Create(context context.Context, titleID int64, authorID uuid.UUID, authorName string, input CreateInput) (*Review, error) {
	if err := service.checkTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		Range(FieldScore, input.Score, constants.MinScore, constants.MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	reviewed, err := service.repo.ExistsByAuthor(context, titleID, authorID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Author:   authorName,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("title_id", titleID),
		slog.Int64("review_id", review.ID),
		slog.String("author", authorName))

	return review, nil
}

// PatchInput holds the optional fields of a partial review update.
type PatchInput struct {
	Text  *string
	Score *int
}

// Patch applies a partial update to a review.
//
// The author may edit their own review; moderators and admins may edit any.
// Editing never trips the one-review-per-title rule.
func (service *Service) Patch(context context.Context, titleID, reviewID int64, actor sec.Actor, actorID uuid.UUID, input PatchInput) (*Review, error) {
	if err := service.checkTitle(context, titleID); err != nil {
		return nil, err
	}

	current, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	isOwner := current.AuthorID == actorID
	if !sec.Allowed(actor, sec.ActionUpdate, sec.ResourceReview, isOwner) {
		return nil, apperr.Forbidden("You may only edit your own reviews")
	}

	if input.Text != nil {
		current.Text = *input.Text
	}
	if input.Score != nil {
		current.Score = *input.Score
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, current.Text).
		Range(FieldScore, current.Score, constants.MinScore, constants.MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated",
		slog.Int64("title_id", titleID),
		slog.Int64("review_id", reviewID))

	return current, nil
}

// Delete removes a review under the same ownership rules as Patch.
func (service *Service) Delete(context context.Context, titleID, reviewID int64, actor sec.Actor, actorID uuid.UUID) error {
	if err := service.checkTitle(context, titleID); err != nil {
		return err
	}

	current, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	isOwner := current.AuthorID == actorID
	if !sec.Allowed(actor, sec.ActionDelete, sec.ResourceReview, isOwner) {
		return apperr.Forbidden("You may only delete your own reviews")
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.Int64("title_id", titleID),
		slog.Int64("review_id", reviewID))

	return nil
}

func (service *Service) checkTitle(context context.Context, titleID int64) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
