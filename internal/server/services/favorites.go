package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/server/models"
	"github.com/aslanbek/shanyrak/internal/server/repositories/repomanager"
)

type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFavoriteService(db *sql.DB, m repomanager.RepositoryManager) *FavoriteService {
	return &FavoriteService{db: db, repomanager: m}
}

// Add bookmarks the listing for the user. The listing must exist; adding a
// bookmark twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID int64) error {

	if _, err := s.repomanager.Listings(s.db).GetByID(ctx, listingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading listing: %w", err)
	}

	if err := s.repomanager.Favorites(s.db).Add(ctx, userID, listingID); err != nil {
		return fmt.Errorf("error adding favorite: %w", err)
	}

	return nil
}

// List returns the user's favorites with listing addresses.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]models.FavoriteListing, error) {

	result, err := s.repomanager.Favorites(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}

	return result, nil
}

// Remove deletes the bookmark and reports whether one existed. A missing
// bookmark is not an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID int64) (bool, error) {

	removed, err := s.repomanager.Favorites(s.db).Remove(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("error removing favorite: %w", err)
	}

	return removed, nil
}
