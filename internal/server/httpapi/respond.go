package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aslanbek/shanyrak/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeDomainError translates a domain error into the HTTP contract.
// Conflicts surface as 400 (the documented register behavior), validation
// failures as 400 with the field message, everything unexpected as 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrConflict):
		writeError(w, http.StatusBadRequest, "username or phone already exists")
	case errors.Is(err, common.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type ackResponse struct {
	Status string `json:"status"`
}

func writeAck(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

type idResponse struct {
	ID int64 `json:"id"`
}
