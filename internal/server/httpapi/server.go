// Package httpapi exposes the REST surface of the service: routing,
// authentication extraction, request decoding and the mapping from domain
// errors to HTTP status codes.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aslanbek/shanyrak/internal/logging"
	"github.com/aslanbek/shanyrak/internal/server/models"
	"github.com/aslanbek/shanyrak/internal/server/services"
)

// IdentityService is the part of the identity domain the API layer needs.
type IdentityService interface {
	Register(ctx context.Context, p services.RegisterParams) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (int64, error)
	GetProfile(ctx context.Context, userID int64) (*services.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, upd services.ProfileUpdate) error
}

type ListingService interface {
	Create(ctx context.Context, ownerID int64, p services.ListingParams) (int64, error)
	Get(ctx context.Context, id int64) (*services.ListingView, error)
	Update(ctx context.Context, id, requesterID int64, upd services.ListingUpdate) error
	Delete(ctx context.Context, id, requesterID int64) error
	Search(ctx context.Context, p services.SearchParams) ([]models.Listing, error)
}

type CommentService interface {
	Add(ctx context.Context, authorID, listingID int64, content string) (int64, error)
	List(ctx context.Context, listingID int64) ([]models.Comment, error)
	Update(ctx context.Context, commentID, listingID, requesterID int64, content string) error
	Delete(ctx context.Context, commentID, listingID, requesterID int64) error
}

type FavoriteService interface {
	Add(ctx context.Context, userID, listingID int64) error
	List(ctx context.Context, userID int64) ([]models.FavoriteListing, error)
	Remove(ctx context.Context, userID, listingID int64) (bool, error)
}

type Server struct {
	logger    logging.Logger
	identity  IdentityService
	listings  ListingService
	comments  CommentService
	favorites FavoriteService
	router    chi.Router
}

func NewServer(
	logger logging.Logger,
	identity IdentityService,
	listings ListingService,
	comments CommentService,
	favorites FavoriteService,
	metrics *Metrics,
) *Server {
	s := &Server{
		logger:    logger,
		identity:  identity,
		listings:  listings,
		comments:  comments,
		favorites: favorites,
	}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(requestLogger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	// public routes
	r.Post("/auth/users", s.register)
	r.Post("/auth/users/login", s.login)
	r.Get("/shanyraks", s.searchListings)
	r.Get("/shanyraks/{id}", s.getListing)
	r.Get("/shanyraks/{id}/comments", s.listComments)

	// protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(s.authenticate)

		pr.Get("/auth/users/me", s.getProfile)
		pr.Patch("/auth/users/me", s.updateProfile)

		pr.Post("/auth/users/favorites/{id}", s.addFavorite)
		pr.Get("/auth/users/favorites", s.listFavorites)
		pr.Delete("/auth/users/favorites/{id}", s.removeFavorite)

		pr.Post("/shanyraks", s.createListing)
		pr.Patch("/shanyraks/{id}", s.updateListing)
		pr.Delete("/shanyraks/{id}", s.deleteListing)

		pr.Post("/shanyraks/{id}/comments", s.addComment)
		pr.Patch("/shanyraks/{id}/comments/{commentID}", s.updateComment)
		pr.Delete("/shanyraks/{id}/comments/{commentID}", s.deleteComment)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}
