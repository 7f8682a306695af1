package web

import (
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	session, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	idToken := r.PathValue("idToken")
	if idToken == "" {
		s.writeError(w, http.StatusBadRequest, "id token required")
		return
	}

	session, err := s.sessions.LoginWithIDToken(r.Context(), idToken)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, session)
}
