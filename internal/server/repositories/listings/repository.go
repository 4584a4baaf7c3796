package listings

import (
	"context"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

// Update describes a partial listing change. Nil fields are left untouched.
type Update struct {
	Type        *string
	Price       *int64
	Address     *string
	Area        *float64
	RoomsCount  *int
	Description *string
}

// SearchFilter narrows a listing search. Nil fields match any value; the
// filters combine with AND semantics.
type SearchFilter struct {
	Limit      int
	Offset     int
	Type       *string
	RoomsCount *int
	PriceFrom  *int64
	PriceUntil *int64
}

type Repository interface {
	Create(ctx context.Context, listing *models.Listing) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	Update(ctx context.Context, id int64, upd Update) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f SearchFilter) ([]models.Listing, error)
}
