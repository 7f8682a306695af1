package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

// lookupRepository is the subset of store.LookupStore that Seeder requires.
type lookupRepository interface {
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetTypeByName(ctx context.Context, name string) (*domain.Type, error)
	CreateType(ctx context.Context, name string) (*domain.Type, error)
}

// seedUserRepository is the subset of store.UserStore that Seeder requires.
type seedUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

var defaultCategories = []string{"General", "Vehicles", "Real Estate", "Investments"}

var defaultTypes = []string{"Tangible", "Intangible"}

const (
	demoUserEmail    = "demo@patrimonyd.local"
	demoUserPassword = "demo-password"
)

// Seeder creates the reference rows the service needs on first boot. Safe to
// run on every start.
type Seeder struct {
	lookups  lookupRepository
	users    seedUserRepository
	seedDemo bool
	logger   *slog.Logger
}

func NewSeeder(lookups lookupRepository, users seedUserRepository, seedDemo bool, logger *slog.Logger) *Seeder {
	return &Seeder{lookups: lookups, users: users, seedDemo: seedDemo, logger: logger}
}

func (s *Seeder) Seed(ctx context.Context) error {
	for _, name := range defaultCategories {
		existing, err := s.lookups.GetCategoryByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check category %q: %w", name, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.lookups.CreateCategory(ctx, name); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		s.logger.Info("seeded category", "name", name)
	}

	for _, name := range defaultTypes {
		existing, err := s.lookups.GetTypeByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check type %q: %w", name, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.lookups.CreateType(ctx, name); err != nil {
			return fmt.Errorf("failed to seed type %q: %w", name, err)
		}
		s.logger.Info("seeded type", "name", name)
	}

	if s.seedDemo {
		if err := s.seedDemoUser(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedDemoUser(ctx context.Context) error {
	existing, err := s.users.GetByEmail(ctx, demoUserEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	_, err = s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Name:         "Demo User",
		Email:        demoUserEmail,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	s.logger.Info("seeded demo user", "email", demoUserEmail)
	return nil
}
