package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/critiq-app/critiq/internal/core/category"
	"github.com/critiq-app/critiq/internal/core/genre"
	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
	"github.com/critiq-app/critiq/internal/platform/validate"
	"github.com/critiq-app/critiq/pkg/slice"
)

type Service struct {
	repo       Repository
	categories category.Repository
	genres     genre.Repository
	logger     *slog.Logger
}

func NewService(repo Repository, categories category.Repository, genres genre.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// List returns one page of titles matching the filter, with ratings and
// associations populated.
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get returns one title by id.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput holds the fields accepted when creating a title. Category and
// genres are referenced by slug; unknown slugs fail with NotFound.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// Create validates and persists a new title.
//
// The year must not lie in the future, and a second title with the same
// name, year and category is rejected with a Conflict.
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, constants.MaxNameLength).
		Range(FieldYear, input.Year, 1, time.Now().Year()).
		Required(FieldCategory, input.CategorySlug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	resolvedCategory, err := service.categories.GetBySlug(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	resolvedGenres, genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	duplicate, err := service.repo.ExistsDuplicate(context, input.Name, input.Year, resolvedCategory.ID, 0)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.Conflict("A title with this name, year and category already exists")
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    resolvedCategory,
		Genres:      resolvedGenres,
	}
	if err := service.repo.Create(context, title, resolvedCategory.ID, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", title.ID),
		slog.String("name", title.Name))

	return title, nil
}

// PatchInput holds the optional fields of a partial title update. Nil
// pointers leave the stored value untouched.
type PatchInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// Patch applies a partial update and returns the refreshed title.
func (service *Service) Patch(context context.Context, id int64, input PatchInput) (*Title, error) {
	current, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Year != nil {
		current.Year = *input.Year
	}
	if input.Description != nil {
		current.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, current.Name).
		MaxLen(FieldName, current.Name, constants.MaxNameLength).
		Range(FieldYear, current.Year, 1, time.Now().Year())

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 0 keeps a title uncategorized, e.g. after its category was deleted.
	categoryID := int64(0)
	if current.Category != nil {
		categoryID = current.Category.ID
	}
	if input.CategorySlug != nil {
		resolvedCategory, err := service.categories.GetBySlug(context, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		current.Category = resolvedCategory
		categoryID = resolvedCategory.ID
	}

	var genreIDs []int64
	replaceGenres := false
	if input.GenreSlugs != nil {
		resolvedGenres, ids, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		current.Genres = resolvedGenres
		genreIDs = ids
		replaceGenres = true
	}

	duplicate, err := service.repo.ExistsDuplicate(context, current.Name, current.Year, categoryID, id)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.Conflict("A title with this name, year and category already exists")
	}

	if err := service.repo.Update(context, current, categoryID, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))

	return service.repo.GetByID(context, id)
}

// Delete removes a title together with its reviews and comments.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("title_id", id))

	return nil
}

// resolveGenres maps slugs to stored genres, preserving input order and
// dropping duplicates. An unknown slug fails the whole operation.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]genre.Genre, []int64, error) {
	resolved := make([]genre.Genre, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))

	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true

		g, err := service.genres.GetBySlug(context, slug)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, *g)
	}

	ids := slice.Map(resolved, func(g genre.Genre) int64 { return g.ID })

	return resolved, ids, nil
}
