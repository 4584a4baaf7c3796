package comments

import (
	"context"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByListing(ctx context.Context, listingID int64) ([]models.Comment, error)
	CountByListing(ctx context.Context, listingID int64) (int, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
	DeleteByListing(ctx context.Context, listingID int64) error
}
