package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patrimonyd/patrimonyd/internal/domain"
	"github.com/patrimonyd/patrimonyd/internal/resolve"
)

// snapshotRepository is the subset of store.SnapshotStore that
// PatrimonyService requires.
type snapshotRepository interface {
	Insert(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Snapshot, error)
	ListByType(ctx context.Context, typeID int64) ([]*domain.Snapshot, error)
	Update(ctx context.Context, snap *domain.Snapshot) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, effectiveDate time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatrimonyService owns the snapshot lifecycle and the current-state queries.
// The owner id on every mutation comes from the authenticated session, never
// from the request body.
type PatrimonyService struct {
	snapshots snapshotRepository
	validate  *requestValidator
	now       func() time.Time
	logger    *slog.Logger
}

func NewPatrimonyService(snapshots snapshotRepository, logger *slog.Logger) *PatrimonyService {
	return &PatrimonyService{
		snapshots: snapshots,
		validate:  newRequestValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

type CreateInput struct {
	Name          string          `json:"name" validate:"max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	EffectiveDate time.Time       `json:"effective_date" validate:"required"`
	TypeID        int64           `json:"type_id" validate:"required"`
	CategoryID    int64           `json:"category_id" validate:"required"`
	Status        domain.Status   `json:"status" validate:"required,oneof=active inactive"`
}

// Create persists a new snapshot owned by callerID and returns it enriched.
func (s *PatrimonyService) Create(ctx context.Context, input CreateInput, callerID uuid.UUID) (*domain.Snapshot, error) {
	if err := s.validate.Check(input); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		EffectiveDate: input.EffectiveDate,
		TypeID:        input.TypeID,
		CategoryID:    input.CategoryID,
		OwnerID:       callerID,
		Status:        input.Status,
	}

	created, err := s.snapshots.Insert(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}
	s.logger.Info("snapshot created", "id", created.ID, "name", created.Name, "owner_id", created.OwnerID)
	return created, nil
}

type UpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	TypeID      int64            `json:"type_id" validate:"required"`
	CategoryID  int64            `json:"category_id" validate:"required"`
	Status      domain.Status    `json:"status" validate:"required,oneof=active inactive"`
}

// Update mutates an existing snapshot row in place. The effective date is not
// updatable here; recording a new point in time is Duplicate's job.
func (s *PatrimonyService) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Snapshot, error) {
	if err := s.validate.Check(input); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}

	if input.Name != nil {
		snap.Name = *input.Name
	}
	if input.Description != nil {
		snap.Description = *input.Description
	}
	if input.Price != nil {
		snap.Price = *input.Price
	}
	snap.TypeID = input.TypeID
	snap.CategoryID = input.CategoryID
	snap.Status = input.Status

	if err := s.snapshots.Update(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to update snapshot: %w", err)
	}

	return s.snapshots.Get(ctx, id)
}

type DuplicateInput struct {
	EffectiveDate *time.Time       `json:"effective_date"`
	Price         *decimal.Decimal `json:"price"`
}

// Duplicate records a new version of an asset: a fresh snapshot copying every
// field of the source except identity, with date and price optionally
// overridden. The source row is left untouched; the resolver's max-date rule
// decides which of the two is current.
func (s *PatrimonyService) Duplicate(ctx context.Context, sourceID uuid.UUID, input DuplicateInput) (*domain.Snapshot, error) {
	src, err := s.snapshots.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source snapshot: %w", err)
	}
	if src == nil {
		return nil, domain.ErrNotFound
	}

	dup := &domain.Snapshot{
		ID:            uuid.New(),
		Name:          src.Name,
		Description:   src.Description,
		Price:         src.Price,
		EffectiveDate: src.EffectiveDate,
		TypeID:        src.TypeID,
		CategoryID:    src.CategoryID,
		OwnerID:       src.OwnerID,
		Status:        src.Status,
	}
	if input.EffectiveDate != nil {
		dup.EffectiveDate = *input.EffectiveDate
	}
	if input.Price != nil {
		dup.Price = *input.Price
	}

	created, err := s.snapshots.Insert(ctx, dup)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate snapshot: %w", err)
	}
	s.logger.Info("snapshot duplicated", "source_id", sourceID, "id", created.ID)
	return created, nil
}

// Deactivate marks the row inactive and bumps its effective date to now. The
// bump makes it the newest in its lineage, so the whole lineage disappears
// from current-state queries, not just this row.
func (s *PatrimonyService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.snapshots.UpdateStatus(ctx, id, domain.StatusInactive, s.now()); err != nil {
		return err
	}
	s.logger.Info("snapshot deactivated", "id", id)
	return nil
}

// Delete permanently removes the row. Irreversible; soft retirement is
// Deactivate's job.
func (s *PatrimonyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.snapshots.Delete(ctx, id)
}

func (s *PatrimonyService) Get(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error) {
	snap, err := s.snapshots.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

// ListCurrent returns the current value of each of the owner's lineages.
func (s *PatrimonyService) ListCurrent(ctx context.Context, ownerID uuid.UUID) ([]*domain.Snapshot, error) {
	snaps, err := s.snapshots.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return sortForDisplay(resolve.Latest(snaps, nil)), nil
}

type Period struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ListForPeriod answers "current assets as of the period's end". Only the end
// bound participates in filtering; the start bound is accepted and normalized
// but never applied as a lower bound, matching the recorded behavior of the
// system this replaces.
func (s *PatrimonyService) ListForPeriod(ctx context.Context, ownerID uuid.UUID, period Period) ([]*domain.Snapshot, error) {
	bounds := normalizePeriod(period, s.now())

	snaps, err := s.snapshots.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return sortForDisplay(resolve.Latest(snaps, &bounds.End)), nil
}

// ListByType is a raw listing: every snapshot row with the given type, across
// all owners, with no lineage resolution and no status filter.
func (s *PatrimonyService) ListByType(ctx context.Context, typeID int64) ([]*domain.Snapshot, error) {
	snaps, err := s.snapshots.ListByType(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by type: %w", err)
	}
	return snaps, nil
}

type periodBounds struct {
	Start time.Time
	End   time.Time
}

// normalizePeriod fills in missing bounds. With neither bound given the
// current calendar month is used. With exactly one bound given the missing
// one is copied from the supplied one, yielding a degenerate single-day
// range; this mirrors the behavior of the system this replaces and is kept
// until product clarifies the intended semantics.
func normalizePeriod(p Period, now time.Time) periodBounds {
	switch {
	case p.StartDate == nil && p.EndDate == nil:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return periodBounds{Start: first, End: last}
	case p.EndDate == nil:
		return periodBounds{Start: *p.StartDate, End: *p.StartDate}
	case p.StartDate == nil:
		return periodBounds{Start: *p.EndDate, End: *p.EndDate}
	default:
		return periodBounds{Start: *p.StartDate, End: *p.EndDate}
	}
}

// sortForDisplay orders resolved snapshots by name ascending, then effective
// date descending, then id, so repeated queries render identically.
func sortForDisplay(snaps []*domain.Snapshot) []*domain.Snapshot {
	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].Name != snaps[j].Name {
			return snaps[i].Name < snaps[j].Name
		}
		if !snaps[i].EffectiveDate.Equal(snaps[j].EffectiveDate) {
			return snaps[i].EffectiveDate.After(snaps[j].EffectiveDate)
		}
		return snaps[i].ID.String() < snaps[j].ID.String()
	})
	return snaps
}
