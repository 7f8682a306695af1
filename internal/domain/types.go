package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle flag of a snapshot row.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Snapshot is one dated record of an asset. All snapshots sharing the same
// (Name, OwnerID) pair form a lineage; the newest active one is the asset's
// current value.
type Snapshot struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	EffectiveDate time.Time       `json:"effective_date"`
	TypeID        int64           `json:"type_id"`
	CategoryID    int64           `json:"category_id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Status        Status          `json:"status"`

	Category *CategoryRef `json:"category,omitempty"`
	Type     *TypeRef     `json:"type,omitempty"`
	Owner    *OwnerRef    `json:"owner,omitempty"`
}

// CategoryRef is the joined category summary attached to enriched reads.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TypeRef is the joined type summary attached to enriched reads.
type TypeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OwnerRef is the joined owner summary attached to enriched reads.
type OwnerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// User is an account that owns snapshots and can open sessions.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Whatsapp     string
	PasswordHash string
	CreatedAt    time.Time
}

type Category struct {
	ID   int64
	Name string
}

type Type struct {
	ID   int64
	Name string
}
