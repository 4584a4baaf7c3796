package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aslanbek/shanyrak/internal/server/models"
	"github.com/aslanbek/shanyrak/internal/server/services"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

type createListingRequest struct {
	Type        string  `json:"type"`
	Price       int64   `json:"price"`
	Address     string  `json:"address"`
	Area        float64 `json:"area"`
	RoomsCount  int     `json:"rooms_count"`
	Description string  `json:"description"`
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.listings.Create(r.Context(), userID, services.ListingParams{
		Type:        req.Type,
		Price:       req.Price,
		Address:     req.Address,
		Area:        req.Area,
		RoomsCount:  req.RoomsCount,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

type listingResponse struct {
	ID            int64   `json:"id"`
	Type          string  `json:"type"`
	Price         int64   `json:"price"`
	Address       string  `json:"address"`
	Area          float64 `json:"area"`
	RoomsCount    int     `json:"rooms_count"`
	Description   string  `json:"description"`
	UserID        int64   `json:"user_id"`
	TotalComments *int    `json:"total_comments,omitempty"`
}

func listingToResponse(l models.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		Type:        l.Type,
		Price:       l.Price,
		Address:     l.Address,
		Area:        l.Area,
		RoomsCount:  l.RoomsCount,
		Description: l.Description,
		UserID:      l.UserID,
	}
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	view, err := s.listings.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := listingToResponse(view.Listing)
	resp.TotalComments = &view.TotalComments
	writeJSON(w, http.StatusOK, resp)
}

type updateListingRequest struct {
	Type        *string  `json:"type"`
	Price       *int64   `json:"price"`
	Address     *string  `json:"address"`
	Area        *float64 `json:"area"`
	RoomsCount  *int     `json:"rooms_count"`
	Description *string  `json:"description"`
}

func (s *Server) updateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.listings.Update(r.Context(), id, userID, services.ListingUpdate{
		Type:        req.Type,
		Price:       req.Price,
		Address:     req.Address,
		Area:        req.Area,
		RoomsCount:  req.RoomsCount,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}

func (s *Server) deleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.listings.Delete(r.Context(), id, userID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}

func (s *Server) searchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.SearchParams{}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		params.Offset = v
	}
	if v := q.Get("ad_type"); v != "" {
		params.Type = &v
	}
	if v, err := strconv.Atoi(q.Get("rooms_count")); err == nil {
		params.RoomsCount = &v
	}
	if v, err := strconv.ParseInt(q.Get("price_from"), 10, 64); err == nil {
		params.PriceFrom = &v
	}
	if v, err := strconv.ParseInt(q.Get("price_until"), 10, 64); err == nil {
		params.PriceUntil = &v
	}

	result, err := s.listings.Search(r.Context(), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]listingResponse, 0, len(result))
	for _, l := range result {
		resp = append(resp, listingToResponse(l))
	}

	writeJSON(w, http.StatusOK, resp)
}
