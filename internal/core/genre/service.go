package genre

import (
	"context"
	"log/slog"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
	"github.com/critiq-app/critiq/internal/platform/validate"
	"github.com/critiq-app/critiq/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of genres and the total match count.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]Genre, int, error) {
	return service.repo.List(context, search, limit, offset)
}

// CreateInput holds the fields accepted when creating a genre.
type CreateInput struct {
	Name string
	Slug string
}

// Create validates and persists a new genre, deriving the slug from the
// name when none is supplied.
func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, constants.MaxNameLength).
		Required(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, constants.MaxSlugLength).
		Slug(FieldSlug, input.Slug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Cheap duplicate check before the insert; the unique index still
	// catches races.
	if _, err := service.repo.GetBySlug(context, input.Slug); err == nil {
		return nil, apperr.Conflict("Genre slug is already in use")
	}

	genre := &Genre{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))

	return genre, nil
}

// Delete removes the genre with the given slug. Titles keep existing;
// only their association rows go away.
func (service *Service) Delete(context context.Context, genreSlug string) error {
	if err := service.repo.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", genreSlug))

	return nil
}
