package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

// LookupStore manages the category and type reference tables. Both are plain
// id/name lookups; the core never interprets them.
type LookupStore struct {
	db *sql.DB
}

func NewLookupStore(db *sql.DB) *LookupStore {
	return &LookupStore{db: db}
}

func (s *LookupStore) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	id, err := s.insert(ctx, "categories", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &domain.Category{ID: id, Name: name}, nil
}

func (s *LookupStore) CreateType(ctx context.Context, name string) (*domain.Type, error) {
	id, err := s.insert(ctx, "types", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create type: %w", err)
	}
	return &domain.Type{ID: id, Name: name}, nil
}

func (s *LookupStore) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	id, err := s.lookup(ctx, "categories", name)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	return &domain.Category{ID: id, Name: name}, nil
}

func (s *LookupStore) GetTypeByName(ctx context.Context, name string) (*domain.Type, error) {
	id, err := s.lookup(ctx, "types", name)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	return &domain.Type{ID: id, Name: name}, nil
}

func (s *LookupStore) insert(ctx context.Context, table, name string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO `+table+` (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *LookupStore) lookup(ctx context.Context, table, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up %s: %w", table, err)
	}
	return id, nil
}
