// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Status is the lifecycle state of a canister.
type Status string

// Canister lifecycle states.
const (
	StatusActive   Status = "active"
	StatusDepleted Status = "depleted"
)

// CanisterType is a physical specification (rated full/empty weight in grams)
// shared by many canisters.
type CanisterType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullWeight  int    `json:"fullWeight"`
	EmptyWeight int    `json:"emptyWeight"`
}

// Canister is an individually tracked gas container referencing one type.
// Cross-references are plain scalars; referential consistency is a boundary
// concern, readers degrade gracefully when a reference dangles.
type Canister struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	TypeID    int64     `json:"canisterTypeId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Weighing is a single dated weight measurement for a canister.
// RecordedAt is a local calendar day in "2006-01-02" form, so lexicographic
// order is chronological order.
type Weighing struct {
	ID         int64  `json:"id"`
	CanisterID string `json:"canisterId"`
	Weight     int    `json:"weight"`
	Comment    string `json:"comment,omitempty"`
	RecordedAt string `json:"recordedAt"`
}

// CanisterRepository is the port for canister persistence.
// Lookups return (nil, nil) when the canister does not exist.
type CanisterRepository interface {
	ListCanisters(ctx context.Context) ([]Canister, error)
	GetCanister(ctx context.Context, id string) (*Canister, error)
	CreateCanister(ctx context.Context, c Canister) error
	UpdateCanisterLabel(ctx context.Context, id, label string) error
	UpdateCanisterStatus(ctx context.Context, id string, status Status) error
	DeleteCanister(ctx context.Context, id string) error
}

// CanisterTypeRepository is the port for canister type persistence.
// CreateCanisterType has get-or-create semantics keyed on name; the bool
// result reports whether a new row was created.
type CanisterTypeRepository interface {
	ListCanisterTypes(ctx context.Context) ([]CanisterType, error)
	GetCanisterType(ctx context.Context, id int64) (*CanisterType, error)
	CreateCanisterType(ctx context.Context, name string, fullWeight, emptyWeight int) (*CanisterType, bool, error)
	DeleteCanisterType(ctx context.Context, id int64) error
}

// WeighingRepository is the port for weighing persistence. Listings are
// ordered by recorded date descending, newest first.
type WeighingRepository interface {
	ListWeighingsForCanister(ctx context.Context, canisterID string) ([]Weighing, error)
	LatestWeighingForCanister(ctx context.Context, canisterID string) (*Weighing, error)
	GetWeighing(ctx context.Context, id int64) (*Weighing, error)
	CreateWeighing(ctx context.Context, w Weighing) (int64, error)
	DeleteWeighing(ctx context.Context, id int64) error
}
