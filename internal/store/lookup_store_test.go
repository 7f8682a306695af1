package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupStoreCategories(t *testing.T) {
	d := openTestDB(t)
	lookups := NewLookupStore(d)
	ctx := context.Background()

	created, err := lookups.CreateCategory(ctx, "Vehicles")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := lookups.GetCategoryByName(ctx, "Vehicles")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := lookups.GetCategoryByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLookupStoreTypes(t *testing.T) {
	d := openTestDB(t)
	lookups := NewLookupStore(d)
	ctx := context.Background()

	created, err := lookups.CreateType(ctx, "Real Estate")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := lookups.GetTypeByName(ctx, "Real Estate")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
}

func TestLookupStoreDuplicateName(t *testing.T) {
	d := openTestDB(t)
	lookups := NewLookupStore(d)
	ctx := context.Background()

	_, err := lookups.CreateCategory(ctx, "Dup")
	require.NoError(t, err)
	_, err = lookups.CreateCategory(ctx, "Dup")
	assert.Error(t, err)
}
