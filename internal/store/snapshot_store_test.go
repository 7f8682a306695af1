package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := sql.Open("sqlite", "file::memory:?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	// Create tables manually for test
	_, err = d.Exec(`
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			whatsapp      TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE categories (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE types (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE patrimonies (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			price          TEXT NOT NULL DEFAULT '0',
			effective_date DATETIME NOT NULL,
			type_id        INTEGER NOT NULL REFERENCES types(id),
			category_id    INTEGER NOT NULL REFERENCES categories(id),
			owner_id       TEXT NOT NULL REFERENCES users(id),
			status         TEXT NOT NULL DEFAULT 'active',
			created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX idx_patrimonies_owner_id ON patrimonies(owner_id);
		CREATE INDEX idx_patrimonies_type_id  ON patrimonies(type_id);
		CREATE INDEX idx_patrimonies_lineage  ON patrimonies(name, owner_id);
	`)
	require.NoError(t, err)

	return d
}

// seedRefs inserts one user, category, and type so snapshot rows have valid
// foreign keys, and returns them.
func seedRefs(t *testing.T, d *sql.DB) (*domain.User, *domain.Category, *domain.Type) {
	ctx := context.Background()
	users := NewUserStore(d)
	lookups := NewLookupStore(d)

	user, err := users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	cat, err := lookups.CreateCategory(ctx, "cat-"+uuid.NewString())
	require.NoError(t, err)
	typ, err := lookups.CreateType(ctx, "type-"+uuid.NewString())
	require.NoError(t, err)

	return user, cat, typ
}

func testSnapshot(user *domain.User, cat *domain.Category, typ *domain.Type, name, date string) *domain.Snapshot {
	d, _ := time.Parse("2006-01-02", date)
	return &domain.Snapshot{
		ID:            uuid.New(),
		Name:          name,
		Description:   "a thing",
		Price:         decimal.RequireFromString("1500.50"),
		EffectiveDate: d,
		TypeID:        typ.ID,
		CategoryID:    cat.ID,
		OwnerID:       user.ID,
		Status:        domain.StatusActive,
	}
}

func TestSnapshotStoreInsertEnriches(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	created, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)

	assert.Equal(t, "Car", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, domain.StatusActive, created.Status)
	require.NotNil(t, created.Category)
	assert.Equal(t, cat.ID, created.Category.ID)
	assert.Equal(t, cat.Name, created.Category.Name)
	require.NotNil(t, created.Type)
	assert.Equal(t, typ.ID, created.Type.ID)
	require.NotNil(t, created.Owner)
	assert.Equal(t, user.ID, created.Owner.ID)
	assert.Equal(t, user.Email, created.Owner.Email)
}

func TestSnapshotStoreGetMissing(t *testing.T) {
	d := openTestDB(t)
	snaps := NewSnapshotStore(d)

	got, err := snaps.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotStoreListByOwnerOrdering(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	_, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "House", "2024-01-01"))
	require.NoError(t, err)
	_, err = snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)
	_, err = snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-02-05"))
	require.NoError(t, err)

	list, err := snaps.ListByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Name ascending, then effective date descending.
	assert.Equal(t, "Car", list[0].Name)
	assert.Equal(t, "2024-02-05", list[0].EffectiveDate.Format("2006-01-02"))
	assert.Equal(t, "Car", list[1].Name)
	assert.Equal(t, "2024-01-10", list[1].EffectiveDate.Format("2006-01-02"))
	assert.Equal(t, "House", list[2].Name)
}

func TestSnapshotStoreListByOwnerScoped(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	other, _, _ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	_, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)

	list, err := snaps.ListByOwner(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnapshotStoreListByTypeCrossesOwners(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	other, _, _ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	_, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)
	theirs := testSnapshot(other, cat, typ, "Bike", "2024-01-12")
	theirs.Status = domain.StatusInactive
	_, err = snaps.Insert(ctx, theirs)
	require.NoError(t, err)

	list, err := snaps.ListByType(ctx, typ.ID)
	require.NoError(t, err)
	// Raw listing: both owners, inactive included.
	assert.Len(t, list, 2)
}

func TestSnapshotStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	created, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)

	created.Name = "Sedan"
	created.Price = decimal.RequireFromString("999.99")
	created.Status = domain.StatusInactive
	require.NoError(t, snaps.Update(ctx, created))

	got, err := snaps.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sedan", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, domain.StatusInactive, got.Status)
	// Update must not move the effective date.
	assert.Equal(t, "2024-01-10", got.EffectiveDate.Format("2006-01-02"))
}

func TestSnapshotStoreUpdateNotFound(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)

	ghost := testSnapshot(user, cat, typ, "Ghost", "2024-01-01")
	err := snaps.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotStoreUpdateStatus(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	created, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)

	bumped := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, snaps.UpdateStatus(ctx, created.ID, domain.StatusInactive, bumped))

	got, err := snaps.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)
	assert.Equal(t, "2024-03-01", got.EffectiveDate.Format("2006-01-02"))
}

func TestSnapshotStoreUpdateStatusNotFound(t *testing.T) {
	d := openTestDB(t)
	snaps := NewSnapshotStore(d)

	err := snaps.UpdateStatus(context.Background(), uuid.New(), domain.StatusInactive, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotStoreDelete(t *testing.T) {
	d := openTestDB(t)
	user, cat, typ := seedRefs(t, d)
	snaps := NewSnapshotStore(d)
	ctx := context.Background()

	created, err := snaps.Insert(ctx, testSnapshot(user, cat, typ, "Car", "2024-01-10"))
	require.NoError(t, err)

	require.NoError(t, snaps.Delete(ctx, created.ID))

	got, err := snaps.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotStoreDeleteNotFound(t *testing.T) {
	d := openTestDB(t)
	snaps := NewSnapshotStore(d)

	err := snaps.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
