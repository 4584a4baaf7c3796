package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/dbx"
	"github.com/aslanbek/shanyrak/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (content, author_id, listing_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.Content, comment.AuthorID, comment.ListingID).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query :=
		`SELECT id, content, created_at, author_id, listing_id FROM comments
		 WHERE id = $1
		 `

	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.ListingID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// ListByListing returns the listing's comments ordered by ascending id so
// the output is deterministic.
func (r *PostgresRepository) ListByListing(ctx context.Context, listingID int64) ([]models.Comment, error) {
	query :=
		`SELECT id, content, created_at, author_id, listing_id FROM comments
		 WHERE listing_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.ListingID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountByListing(ctx context.Context, listingID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM comments WHERE listing_id = $1`, listingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteByListing removes every comment attached to listingID. Used by the
// listing service inside the deletion transaction.
func (r *PostgresRepository) DeleteByListing(ctx context.Context, listingID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
