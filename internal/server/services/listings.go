package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/dbx"
	"github.com/aslanbek/shanyrak/internal/server/models"
	"github.com/aslanbek/shanyrak/internal/server/repositories/listings"
	"github.com/aslanbek/shanyrak/internal/server/repositories/repomanager"
	"github.com/aslanbek/shanyrak/internal/server/validation"
)

const (
	defaultSearchLimit = 10
)

type ListingParams struct {
	Type        string
	Price       int64
	Address     string
	Area        float64
	RoomsCount  int
	Description string
}

// ListingUpdate is a partial listing change. Nil fields stay untouched.
type ListingUpdate struct {
	Type        *string
	Price       *int64
	Address     *string
	Area        *float64
	RoomsCount  *int
	Description *string
}

// ListingView is a listing together with its live comment count.
type ListingView struct {
	models.Listing
	TotalComments int
}

// SearchParams narrows and paginates a listing search. Zero Limit falls back
// to the default page size.
type SearchParams struct {
	Limit      int
	Offset     int
	Type       *string
	RoomsCount *int
	PriceFrom  *int64
	PriceUntil *int64
}

type ListingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewListingService(db *sql.DB, m repomanager.RepositoryManager) *ListingService {
	return &ListingService{db: db, repomanager: m}
}

func (s *ListingService) Create(ctx context.Context, ownerID int64, p ListingParams) (int64, error) {

	if err := validation.Price(p.Price); err != nil {
		return 0, err
	}
	if err := validation.Area(p.Area); err != nil {
		return 0, err
	}
	if err := validation.RoomsCount(p.RoomsCount); err != nil {
		return 0, err
	}

	listing := &models.Listing{
		Type:        p.Type,
		Price:       p.Price,
		Address:     p.Address,
		Area:        p.Area,
		RoomsCount:  p.RoomsCount,
		Description: p.Description,
		UserID:      ownerID,
	}

	id, err := s.repomanager.Listings(s.db).Create(ctx, listing)
	if err != nil {
		return 0, fmt.Errorf("error creating listing: %w", err)
	}

	return id, nil
}

// Get returns the listing together with its current comment count. The count
// is computed per call, not cached.
func (s *ListingService) Get(ctx context.Context, id int64) (*ListingView, error) {

	listing, err := s.repomanager.Listings(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading listing: %w", err)
	}

	total, err := s.repomanager.Comments(s.db).CountByListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error counting comments: %w", err)
	}

	return &ListingView{Listing: *listing, TotalComments: total}, nil
}

// Update applies a partial change after the existence and ownership checks.
// NotFound is checked before Forbidden.
func (s *ListingService) Update(ctx context.Context, id, requesterID int64, upd ListingUpdate) error {

	repo := s.repomanager.Listings(s.db)

	listing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading listing: %w", err)
	}

	if listing.UserID != requesterID {
		return common.ErrForbidden
	}

	if upd.Price != nil {
		if err := validation.Price(*upd.Price); err != nil {
			return err
		}
	}
	if upd.Area != nil {
		if err := validation.Area(*upd.Area); err != nil {
			return err
		}
	}
	if upd.RoomsCount != nil {
		if err := validation.RoomsCount(*upd.RoomsCount); err != nil {
			return err
		}
	}

	err = repo.Update(ctx, id, listings.Update{
		Type:        upd.Type,
		Price:       upd.Price,
		Address:     upd.Address,
		Area:        upd.Area,
		RoomsCount:  upd.RoomsCount,
		Description: upd.Description,
	})
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error updating listing: %w", err)
	}

	return err
}

// Delete removes the listing and its dependent comments and favorites in one
// transaction, after the existence and ownership checks.
func (s *ListingService) Delete(ctx context.Context, id, requesterID int64) error {

	listing, err := s.repomanager.Listings(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading listing: %w", err)
	}

	if listing.UserID != requesterID {
		return common.ErrForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Comments(tx).DeleteByListing(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Favorites(tx).DeleteByListing(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Listings(tx).Delete(ctx, id)
	})
}

// Search applies the optional filters with AND semantics. Limit defaults to
// 10 and is at least 1; offset is at least 0.
func (s *ListingService) Search(ctx context.Context, p SearchParams) ([]models.Listing, error) {

	if p.Limit < 1 {
		p.Limit = defaultSearchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	result, err := s.repomanager.Listings(s.db).Search(ctx, listings.SearchFilter{
		Limit:      p.Limit,
		Offset:     p.Offset,
		Type:       p.Type,
		RoomsCount: p.RoomsCount,
		PriceFrom:  p.PriceFrom,
		PriceUntil: p.PriceUntil,
	})
	if err != nil {
		return nil, fmt.Errorf("error searching listings: %w", err)
	}

	return result, nil
}
