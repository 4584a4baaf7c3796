package users

import (
	"context"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

// Update describes a partial profile change. Nil fields are left untouched.
type Update struct {
	Phone *string
	Name  *string
	City  *string
}

type Repository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, upd Update) error
}
