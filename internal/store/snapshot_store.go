package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

// SnapshotStore persists asset snapshot rows. All reads join the category,
// type, and owner tables so callers get enriched snapshots without a second
// round trip.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

const snapshotColumns = `
	p.id, p.name, p.description, p.price, p.effective_date,
	p.type_id, p.category_id, p.owner_id, p.status,
	c.id, c.name, t.id, t.name, u.name, u.email
`

const snapshotJoins = `
	FROM patrimonies p
	JOIN categories c ON c.id = p.category_id
	JOIN types t      ON t.id = p.type_id
	JOIN users u      ON u.id = p.owner_id
`

func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patrimonies (id, name, description, price, effective_date, type_id, category_id, owner_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID.String(), snap.Name, snap.Description, snap.Price.String(), snap.EffectiveDate,
		snap.TypeID, snap.CategoryID, snap.OwnerID.String(), string(snap.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return s.Get(ctx, snap.ID)
}

func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+snapshotJoins+` WHERE p.id = ?`, id.String())

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snap, nil
}

// ListByOwner returns every snapshot row belonging to ownerID, active and
// inactive alike, ordered by name ascending then effective date descending.
func (s *SnapshotStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+snapshotJoins+`
		WHERE p.owner_id = ?
		ORDER BY p.name ASC, p.effective_date DESC`, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by owner: %w", err)
	}
	return collectSnapshots(rows)
}

// ListByType returns all snapshot rows with the given type across all owners.
// No lineage resolution and no status filtering happens here.
func (s *SnapshotStore) ListByType(ctx context.Context, typeID int64) ([]*domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+snapshotJoins+`
		WHERE p.type_id = ?
		ORDER BY p.name ASC, p.effective_date DESC`, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by type: %w", err)
	}
	return collectSnapshots(rows)
}

// Update rewrites the mutable columns of an existing row in place. The
// effective date is deliberately not touched; only Deactivate moves it.
func (s *SnapshotStore) Update(ctx context.Context, snap *domain.Snapshot) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE patrimonies
		SET name = ?, description = ?, price = ?, type_id = ?, category_id = ?, status = ?
		WHERE id = ?
	`, snap.Name, snap.Description, snap.Price.String(), snap.TypeID, snap.CategoryID,
		string(snap.Status), snap.ID.String())
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	return requireRow(result)
}

// UpdateStatus flips the lifecycle flag and rewrites the effective date in one
// statement; deactivation relies on both changing together.
func (s *SnapshotStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, effectiveDate time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE patrimonies SET status = ?, effective_date = ? WHERE id = ?
	`, string(status), effectiveDate, id.String())
	if err != nil {
		return fmt.Errorf("failed to update snapshot status: %w", err)
	}

	return requireRow(result)
}

func (s *SnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM patrimonies WHERE id = ?
	`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return requireRow(result)
}

// requireRow maps a zero-rows-affected result to domain.ErrNotFound.
func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Category: &domain.CategoryRef{},
		Type:     &domain.TypeRef{},
		Owner:    &domain.OwnerRef{},
	}
	var id, ownerID, priceStr, status string

	err := row.Scan(
		&id, &snap.Name, &snap.Description, &priceStr, &snap.EffectiveDate,
		&snap.TypeID, &snap.CategoryID, &ownerID, &status,
		&snap.Category.ID, &snap.Category.Name,
		&snap.Type.ID, &snap.Type.Name,
		&snap.Owner.Name, &snap.Owner.Email,
	)
	if err != nil {
		return nil, err
	}

	if snap.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot id: %w", err)
	}
	if snap.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("failed to parse owner id: %w", err)
	}
	snap.Owner.ID = snap.OwnerID
	if snap.Price, err = decimal.NewFromString(priceStr); err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	snap.Status = domain.Status(status)

	return snap, nil
}

func collectSnapshots(rows *sql.Rows) ([]*domain.Snapshot, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var snaps []*domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snaps, nil
}
