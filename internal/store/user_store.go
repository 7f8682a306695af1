package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, whatsapp, password_hash) VALUES (?, ?, ?, ?, ?)
	`, user.ID.String(), user.Name, user.Email, user.Whatsapp, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetByID(ctx, user.ID)
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, `WHERE id = ?`, id.String())
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `WHERE email = ?`, email)
}

func (s *UserStore) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	var id string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, whatsapp, password_hash, created_at FROM users `+where,
		arg).Scan(&id, &user.Name, &user.Email, &user.Whatsapp, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}

	return user, nil
}
