package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/patrimonyd/patrimonyd/internal/domain"
	"github.com/patrimonyd/patrimonyd/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	patrimony *service.PatrimonyService
	sessions  *service.SessionService
	mux       *http.ServeMux
	logger    *slog.Logger
}

func NewServer(patrimony *service.PatrimonyService, sessions *service.SessionService, logger *slog.Logger) *Server {
	s := &Server{
		patrimony: patrimony,
		sessions:  sessions,
		mux:       http.NewServeMux(),
		logger:    logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /sessions", s.handleLogin)
	if s.sessions.SupportsIDToken() {
		s.mux.HandleFunc("POST /sessions/google/{idToken}", s.handleGoogleLogin)
	}

	s.mux.Handle("GET /patrimonies", s.requireAuth(s.handleListCurrent))
	s.mux.Handle("POST /patrimonies/period", s.requireAuth(s.handleListForPeriod))
	s.mux.Handle("GET /patrimonies/type/{typeID}", s.requireAuth(s.handleListByType))
	s.mux.Handle("POST /patrimonies", s.requireAuth(s.handleCreate))
	s.mux.Handle("GET /patrimonies/{id}", s.requireAuth(s.handleGet))
	s.mux.Handle("PUT /patrimonies/{id}", s.requireAuth(s.handleUpdate))
	s.mux.Handle("POST /patrimonies/{id}/duplicate", s.requireAuth(s.handleDuplicate))
	s.mux.Handle("POST /patrimonies/{id}/deactivate", s.requireAuth(s.handleDeactivate))
	s.mux.Handle("DELETE /patrimonies/{id}", s.requireAuth(s.handleDelete))
}

type ctxKey int

const ownerIDKey ctxKey = iota

func withOwnerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDKey, id)
}

// ownerID returns the authenticated owner's id. Only valid under requireAuth.
func ownerID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(ownerIDKey).(uuid.UUID)
	return id
}

// requireAuth verifies the bearer token and injects the owner id into the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		id, err := s.sessions.VerifyToken(token)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withOwnerID(r.Context(), id)))
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps domain errors onto HTTP statuses. Anything outside the
// taxonomy is logged with full detail and surfaced as a generic failure.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "patrimony not found")
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		s.writeError(w, http.StatusUnauthorized, "authentication failed")
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes a JSON request body, tolerating an empty body.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return &domain.ValidationError{Message: "malformed request body"}
	}
	return nil
}

// parseID extracts the {id} path variable as a UUID.
func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
