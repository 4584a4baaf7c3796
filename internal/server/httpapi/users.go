package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	City     string `json:"city"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.identity.Register(r.Context(), services.RegisterParams{
		Username: req.Username,
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
		City:     req.City,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// login accepts form-encoded credentials, as OAuth2 password flows do.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.identity.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			// documented surface: bad credentials are a 400, not a 401
			writeError(w, http.StatusBadRequest, "invalid username or password")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

type profileResponse struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	City     string `json:"city"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := s.identity.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username: p.Username,
		Phone:    p.Phone,
		Name:     p.Name,
		City:     p.City,
	})
}

type updateProfileRequest struct {
	Phone *string `json:"phone"`
	Name  *string `json:"name"`
	City  *string `json:"city"`
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.identity.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Phone: req.Phone,
		Name:  req.Name,
		City:  req.City,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeAck(w)
}
