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

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

// Add attaches a comment to the listing. The listing must exist.
func (s *CommentService) Add(ctx context.Context, authorID, listingID int64, content string) (int64, error) {

	if _, err := s.repomanager.Listings(s.db).GetByID(ctx, listingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("error loading listing: %w", err)
	}

	comment := &models.Comment{
		Content:   content,
		AuthorID:  authorID,
		ListingID: listingID,
	}

	comment, err := s.repomanager.Comments(s.db).Create(ctx, comment)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return comment.ID, nil
}

// List returns the listing's comments in ascending id order. The listing
// must exist.
func (s *CommentService) List(ctx context.Context, listingID int64) ([]models.Comment, error) {

	if _, err := s.repomanager.Listings(s.db).GetByID(ctx, listingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading listing: %w", err)
	}

	result, err := s.repomanager.Comments(s.db).ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	return result, nil
}

// Count returns the number of comments currently attached to the listing.
func (s *CommentService) Count(ctx context.Context, listingID int64) (int, error) {
	return s.repomanager.Comments(s.db).CountByListing(ctx, listingID)
}

// Update changes a comment's content after the existence and authorship
// checks. The comment must belong to the listing named in the request.
func (s *CommentService) Update(ctx context.Context, commentID, listingID, requesterID int64, content string) error {

	comment, err := s.getOwned(ctx, commentID, listingID, requesterID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Comments(s.db).UpdateContent(ctx, comment.ID, content); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error updating comment: %w", err)
	}

	return nil
}

// Delete removes a comment after the existence and authorship checks.
func (s *CommentService) Delete(ctx context.Context, commentID, listingID, requesterID int64) error {

	comment, err := s.getOwned(ctx, commentID, listingID, requesterID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Comments(s.db).Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error deleting comment: %w", err)
	}

	return nil
}

// getOwned loads the comment and enforces that it belongs to listingID and
// was written by requesterID. NotFound is checked before Forbidden.
func (s *CommentService) getOwned(ctx context.Context, commentID, listingID, requesterID int64) (*models.Comment, error) {

	comment, err := s.repomanager.Comments(s.db).GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading comment: %w", err)
	}

	if comment.ListingID != listingID {
		return nil, common.ErrNotFound
	}

	if comment.AuthorID != requesterID {
		return nil, common.ErrForbidden
	}

	return comment, nil
}
