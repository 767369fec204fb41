package category

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

// List returns one page of categories and the total match count.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]Category, int, error) {
	return service.repo.List(context, search, limit, offset)
}

// CreateInput holds the fields accepted when creating a category.
type CreateInput struct {
	Name string
	Slug string
}

// Create validates and persists a new category.
//
// A blank slug is derived from the name. A slug already in use fails with
// a Conflict.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
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

	// Fast-path duplicate check. The unique index on slug remains the
	// backstop for concurrent creates.
	if _, err := service.repo.GetBySlug(context, input.Slug); err == nil {
		return nil, apperr.Conflict("Category slug is already in use")
	}

	category := &Category{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))

	return category, nil
}

// Delete removes the category with the given slug.
func (service *Service) Delete(context context.Context, categorySlug string) error {
	if err := service.repo.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", categorySlug))

	return nil
}
