package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (r *PostgresRepository) Create(ctx context.Context, listing *models.Listing) (int64, error) {

	query :=
		`INSERT INTO listings (type, price, address, area, rooms_count, description, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		listing.Type, listing.Price, listing.Address, listing.Area,
		listing.RoomsCount, listing.Description, listing.UserID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	query :=
		`SELECT id, type, price, address, area, rooms_count, description, user_id FROM listings
		 WHERE id = $1
		 `

	l := &models.Listing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Type, &l.Price, &l.Address, &l.Area, &l.RoomsCount, &l.Description, &l.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

// Update applies only the fields present in upd, in a single statement.
func (r *PostgresRepository) Update(ctx context.Context, id int64, upd Update) error {

	set := make([]string, 0, 6)
	args := make([]any, 0, 7)

	appendField := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Type != nil {
		appendField("type", *upd.Type)
	}
	if upd.Price != nil {
		appendField("price", *upd.Price)
	}
	if upd.Address != nil {
		appendField("address", *upd.Address)
	}
	if upd.Area != nil {
		appendField("area", *upd.Area)
	}
	if upd.RoomsCount != nil {
		appendField("rooms_count", *upd.RoomsCount)
	}
	if upd.Description != nil {
		appendField("description", *upd.Description)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE listings SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
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

// Search returns listings matching f, ordered by ascending id so that
// offset pagination is stable.
func (r *PostgresRepository) Search(ctx context.Context, f SearchFilter) ([]models.Listing, error) {

	where := make([]string, 0, 4)
	args := make([]any, 0, 6)

	appendCond := func(cond string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != nil {
		appendCond("type = $%d", *f.Type)
	}
	if f.RoomsCount != nil {
		appendCond("rooms_count = $%d", *f.RoomsCount)
	}
	if f.PriceFrom != nil {
		appendCond("price >= $%d", *f.PriceFrom)
	}
	if f.PriceUntil != nil {
		appendCond("price <= $%d", *f.PriceUntil)
	}

	query := `SELECT id, type, price, address, area, rooms_count, description, user_id FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Type, &l.Price, &l.Address, &l.Area, &l.RoomsCount, &l.Description, &l.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
