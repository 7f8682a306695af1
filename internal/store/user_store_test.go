package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

func TestUserStoreCreateAndGet(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)
	ctx := context.Background()

	created, err := users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Name:         "Bob",
		Email:        "bob@example.com",
		Whatsapp:     "+5511999990000",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", created.Name)
	assert.Equal(t, "+5511999990000", created.Whatsapp)
	assert.NotZero(t, created.CreatedAt)

	byEmail, err := users.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
}

func TestUserStoreGetByEmailMissing(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)

	got, err := users.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStoreGetByIDMissing(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)

	got, err := users.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	d := openTestDB(t)
	users := NewUserStore(d)
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{ID: uuid.New(), Name: "A", Email: "dup@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{ID: uuid.New(), Name: "B", Email: "dup@example.com", PasswordHash: "x"})
	assert.Error(t, err)
}
