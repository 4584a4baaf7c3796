package favorites

import (
	"context"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

type Repository interface {
	// Add records the (user, listing) pair. Adding an existing pair is a
	// no-op, not an error.
	Add(ctx context.Context, userID, listingID int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.FavoriteListing, error)
	// Remove deletes the pair and reports whether a row actually existed.
	Remove(ctx context.Context, userID, listingID int64) (bool, error)
	DeleteByListing(ctx context.Context, listingID int64) error
}
