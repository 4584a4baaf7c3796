package favorites

import (
	"context"
	"fmt"

	"github.com/aslanbek/shanyrak/internal/dbx"
	"github.com/aslanbek/shanyrak/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add is idempotent: the unique (user_id, listing_id) key plus
// ON CONFLICT DO NOTHING makes repeated adds keep exactly one row,
// without a read-then-write race.
func (r *PostgresRepository) Add(ctx context.Context, userID, listingID int64) error {
	query :=
		`INSERT INTO favorites (user_id, listing_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, listing_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, listingID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByUser joins favorites to listings for the address; the inner join
// drops entries whose listing no longer exists.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteListing, error) {
	query :=
		`SELECT f.listing_id, l.address
		 FROM favorites f
		 JOIN listings l ON l.id = f.listing_id
		 WHERE f.user_id = $1
		 ORDER BY f.id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.FavoriteListing{}
	for rows.Next() {
		var f models.FavoriteListing
		if err := rows.Scan(&f.ListingID, &f.Address); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, listingID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

// DeleteByListing removes every favorite pointing at listingID. Used by the
// listing service inside the deletion transaction.
func (r *PostgresRepository) DeleteByListing(ctx context.Context, listingID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
