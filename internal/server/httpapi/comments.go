package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aslanbek/shanyrak/internal/server/models"
)

// commentRequest carries the comment body. Content is a pointer so a request
// that omits the field is rejected instead of being read as an empty string.
type commentRequest struct {
	Content *string `json:"content"`
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	id, err := s.comments.Add(r.Context(), userID, listingID, *req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

type commentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  int64     `json:"author_id"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	listingID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	result, err := s.comments.List(r.Context(), listingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentList(result))
}

func toCommentList(comments []models.Comment) commentListResponse {
	resp := commentListResponse{Comments: make([]commentResponse, 0, len(comments))}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, commentResponse{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			AuthorID:  c.AuthorID,
		})
	}
	return resp
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
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
	commentID, ok := pathID(r, "commentID")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	if err := s.comments.Update(r.Context(), commentID, listingID, userID, *req.Content); err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
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
	commentID, ok := pathID(r, "commentID")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.comments.Delete(r.Context(), commentID, listingID, userID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}
