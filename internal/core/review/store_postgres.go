package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, limit, offset int) ([]Review, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM core.review
		WHERE titleid = $1`

	const pageQuery = `
		SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat
		FROM core.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.titleid = $1
		ORDER BY r.createdat DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.db.Query(context, pageQuery, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var r Review
		err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat
		FROM core.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.id = $1 AND r.titleid = $2`

	r := &Review{}
	err := repository.db.QueryRow(context, query, reviewID, titleID).
		Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) Exists(context context.Context, titleID, reviewID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM core.review WHERE id = $1 AND titleid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) ExistsByAuthor(context context.Context, titleID int64, authorID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM core.review WHERE titleid = $1 AND authorid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_author_check")
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO core.review (titleid, authorid, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `
		UPDATE core.review
		SET text = $2, score = $3
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	const query = `DELETE FROM core.review WHERE id = $1 AND titleid = $2`

	tag, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}
