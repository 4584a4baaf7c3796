package httpapi

import (
	"net/http"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.favorites.Add(r.Context(), userID, listingID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}

type favoriteResponse struct {
	ID      int64  `json:"id"`
	Address string `json:"address"`
}

type favoriteListResponse struct {
	Favorites []favoriteResponse `json:"favorites"`
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := s.favorites.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFavoriteList(result))
}

func toFavoriteList(favorites []models.FavoriteListing) favoriteListResponse {
	resp := favoriteListResponse{Favorites: make([]favoriteResponse, 0, len(favorites))}
	for _, f := range favorites {
		resp.Favorites = append(resp.Favorites, favoriteResponse{
			ID:      f.ListingID,
			Address: f.Address,
		})
	}
	return resp
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if _, err := s.favorites.Remove(r.Context(), userID, listingID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}
