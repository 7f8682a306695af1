package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

// userRepository is the subset of store.UserStore that SessionService requires.
type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// IdentityVerifier checks a third-party identity token and returns the email
// address it asserts. Token verification is owned by the external identity
// provider; this service only consumes the result.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Whatsapp string    `json:"whatsapp,omitempty"`
}

type Session struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

// SessionService authenticates users and issues signed session tokens.
type SessionService struct {
	users    userRepository
	verifier IdentityVerifier
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewSessionService creates a SessionService. verifier may be nil when no
// third-party identity provider is configured; token login then always fails.
func NewSessionService(users userRepository, verifier IdentityVerifier, secret string, ttl time.Duration, logger *slog.Logger) *SessionService {
	return &SessionService{
		users:    users,
		verifier: verifier,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Login checks email and password and opens a session. Unknown emails and
// wrong passwords are reported identically.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.open(user)
}

// LoginWithIDToken verifies a third-party identity token and opens a session
// for the user registered under the asserted email.
func (s *SessionService) LoginWithIDToken(ctx context.Context, idToken string) (*Session, error) {
	if s.verifier == nil {
		return nil, domain.ErrInvalidToken
	}

	email, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn("identity token verification failed", "error", err)
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.open(user)
}

// SupportsIDToken reports whether a third-party identity provider is wired.
func (s *SessionService) SupportsIDToken() bool {
	return s.verifier != nil
}

// VerifyToken parses a session token and returns the owner id it carries.
func (s *SessionService) VerifyToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return ownerID, nil
}

func (s *SessionService) open(user *domain.User) (*Session, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Info("session opened", "user_id", user.ID)
	return &Session{
		User: SessionUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Whatsapp: user.Whatsapp,
		},
		Token: token,
	}, nil
}
