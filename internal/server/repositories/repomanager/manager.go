package repomanager

import (
	"context"
	"database/sql"

	"github.com/aslanbek/shanyrak/internal/dbx"
	"github.com/aslanbek/shanyrak/internal/server/repositories/comments"
	"github.com/aslanbek/shanyrak/internal/server/repositories/favorites"
	"github.com/aslanbek/shanyrak/internal/server/repositories/listings"
	"github.com/aslanbek/shanyrak/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Listings(db dbx.DBTX) listings.Repository
	Comments(db dbx.DBTX) comments.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
