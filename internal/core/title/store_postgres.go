package title

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critiq-app/critiq/internal/core/category"
	"github.com/critiq-app/critiq/internal/core/genre"
	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// filterClause is shared by the count and page queries so the total always
// matches the page contents.
const filterClause = `
	($1 = '' OR t.name ILIKE '%' || $1 || '%')
	AND ($2 = 0 OR t.year = $2)
	AND ($3 = '' OR c.slug = $3)
	AND (cardinality($4::varchar[]) = 0 OR EXISTS (
		SELECT 1
		FROM core.title_genre tg
		JOIN core.genre g ON g.id = tg.genreid
		WHERE tg.titleid = t.id AND g.slug = ANY($4)))`

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]Title, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM core.title t
		LEFT JOIN core.category c ON c.id = t.categoryid
		WHERE` + filterClause

	const pageQuery = `
		SELECT t.id, t.name, t.year, t.description, t.createdat,
		       ROUND(r.rating::numeric, 1)::float8,
		       c.id, c.name, c.slug
		FROM core.title t
		LEFT JOIN core.category c ON c.id = t.categoryid
		LEFT JOIN (
			SELECT titleid, AVG(score) AS rating
			FROM core.review
			GROUP BY titleid
		) r ON r.titleid = t.id
		WHERE` + filterClause + `
		ORDER BY t.name ASC, t.id ASC
		LIMIT $5 OFFSET $6`

	year := 0
	if filter.Year != nil {
		year = *filter.Year
	}
	// A nil slice would reach the driver as NULL and void the cardinality
	// guard in the filter clause.
	genreSlugs := filter.GenreSlugs
	if genreSlugs == nil {
		genreSlugs = []string{}
	}

	var total int
	err := repository.db.QueryRow(context, countQuery,
		filter.Name, year, filter.CategorySlug, genreSlugs).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	rows, err := repository.db.Query(context, pageQuery,
		filter.Name, year, filter.CategorySlug, genreSlugs, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, *t)
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	const query = `
		SELECT t.id, t.name, t.year, t.description, t.createdat,
		       ROUND(r.rating::numeric, 1)::float8,
		       c.id, c.name, c.slug
		FROM core.title t
		LEFT JOIN core.category c ON c.id = t.categoryid
		LEFT JOIN (
			SELECT titleid, AVG(score) AS rating
			FROM core.review
			WHERE titleid = $1
			GROUP BY titleid
		) r ON r.titleid = t.id
		WHERE t.id = $1`

	row := repository.db.QueryRow(context, query, id)
	t, err := scanTitle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "get_title")
	}

	titles := []Title{*t}
	if err := repository.attachGenres(context, titles); err != nil {
		return nil, err
	}

	return &titles[0], nil
}

func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM core.title WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) ExistsDuplicate(context context.Context, name string, year int, categoryID int64, excludeID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM core.title
			WHERE lower(name) = lower($1) AND year = $2
				AND COALESCE(categoryid, 0) = $3 AND id <> $4
		)`

	var exists bool
	err := repository.db.QueryRow(context, query, name, year, categoryID, excludeID).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "title_duplicate_check")
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, categoryID int64, genreIDs []int64) error {
	const insertTitle = `
		INSERT INTO core.title (name, year, description, categoryid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, insertTitle,
		title.Name, title.Year, title.Description, categoryID).
		Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenres(context, transaction, title.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, categoryID int64, genreIDs []int64, replaceGenres bool) error {
	// A deleted category leaves titles with a NULL categoryid; a patch that
	// does not re-assign one carries categoryID 0 and must keep the NULL.
	const updateTitle = `
		UPDATE core.title
		SET name = $2, year = $3, description = $4, categoryid = NULLIF($5, 0)
		WHERE id = $1`

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer transaction.Rollback(context)

	tag, err := transaction.Exec(context, updateTitle,
		title.ID, title.Name, title.Year, title.Description, categoryID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		const clearGenres = `DELETE FROM core.title_genre WHERE titleid = $1`
		if _, err := transaction.Exec(context, clearGenres, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := insertGenres(context, transaction, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM core.title WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

func insertGenres(context context.Context, transaction pgx.Tx, titleID int64, genreIDs []int64) error {
	const query = `INSERT INTO core.title_genre (titleid, genreid) VALUES ($1, $2)`

	for _, genreID := range genreIDs {
		if _, err := transaction.Exec(context, query, titleID, genreID); err != nil {
			return dberr.Wrap(err, "attach_title_genre")
		}
	}

	return nil
}

// attachGenres fills Genres for every title in one round trip.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug, g.createdat
		FROM core.title_genre tg
		JOIN core.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.slug ASC`

	titleIDs := make([]int64, len(titles))
	index := make(map[int64]*Title, len(titles))
	for i := range titles {
		titleIDs[i] = titles[i].ID
		index[titles[i].ID] = &titles[i]
		titles[i].Genres = make([]genre.Genre, 0)
	}

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var g genre.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if t, ok := index[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}

	return nil
}

func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{}
	var categoryID *int64
	var categoryName, categorySlug *string

	err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt,
		&t.Rating, &categoryID, &categoryName, &categorySlug)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		t.Category = &category.Category{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return t, nil
}
