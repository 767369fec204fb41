package comment

import (
	"context"
	"errors"

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

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int64, limit, offset int) ([]Comment, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM core.comment
		WHERE reviewid = $1`

	const pageQuery = `
		SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat
		FROM core.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.reviewid = $1
		ORDER BY c.createdat ASC, c.id ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	rows, err := repository.db.Query(context, pageQuery, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat
		FROM core.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.id = $1 AND c.reviewid = $2`

	c := &Comment{}
	err := repository.db.QueryRow(context, query, commentID, reviewID).
		Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO core.comment (reviewid, authorid, text)
		VALUES ($1, $2, $3)
		RETURNING id, createdat`

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `
		UPDATE core.comment
		SET text = $2
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int64) error {
	const query = `DELETE FROM core.comment WHERE id = $1 AND reviewid = $2`

	tag, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
