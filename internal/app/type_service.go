package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xivind/gas-gauge/internal/domain"
)

// Type management errors.
var (
	ErrCanisterTypeNotFound  = errors.New("canister type not found")
	ErrInvalidWeights        = errors.New("empty weight must be less than full weight")
	ErrProtectedCanisterType = errors.New("cannot delete a protected canister type")
)

// protectedTypeNames are seed types that must survive administrative cleanup.
var protectedTypeNames = map[string]bool{
	"Coleman 240g": true,
	"Coleman 450g": true,
}

// predefinedTypes are seeded at startup. Weights in grams.
var predefinedTypes = []domain.CanisterType{
	{Name: "Coleman 240g", FullWeight: 361, EmptyWeight: 122},
	{Name: "Primus 230g", FullWeight: 381, EmptyWeight: 151},
	{Name: "Primus 100g", FullWeight: 203, EmptyWeight: 103},
}

// TypeService encapsulates canister type management.
type TypeService struct {
	types domain.CanisterTypeRepository
}

// NewTypeService creates a TypeService backed by the given repository.
func NewTypeService(tr domain.CanisterTypeRepository) *TypeService {
	return &TypeService{types: tr}
}

// List returns the full type catalog.
func (s *TypeService) List(ctx context.Context) ([]domain.CanisterType, error) {
	return s.types.ListCanisterTypes(ctx)
}

// Create registers a canister type. A duplicate name is not an error: the
// existing type is returned unchanged.
func (s *TypeService) Create(ctx context.Context, name string, fullWeight, emptyWeight int) (*domain.CanisterType, error) {
	if name == "" {
		return nil, errors.New("name must not be empty")
	}
	if fullWeight <= 0 || emptyWeight <= 0 || emptyWeight >= fullWeight {
		return nil, ErrInvalidWeights
	}
	ct, created, err := s.types.CreateCanisterType(ctx, name, fullWeight, emptyWeight)
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("created canister type %q", name)
	}
	return ct, nil
}

// Delete removes a canister type unless it is one of the protected seed types.
func (s *TypeService) Delete(ctx context.Context, id int64) error {
	ct, err := s.types.GetCanisterType(ctx, id)
	if err != nil {
		return err
	}
	if ct == nil {
		return ErrCanisterTypeNotFound
	}
	if protectedTypeNames[ct.Name] {
		return fmt.Errorf("%w: %s", ErrProtectedCanisterType, ct.Name)
	}
	if err := s.types.DeleteCanisterType(ctx, id); err != nil {
		return err
	}
	log.Printf("deleted canister type %q", ct.Name)
	return nil
}

// Seed ensures the predefined canister types exist. Idempotent, so it runs
// on every startup.
func (s *TypeService) Seed(ctx context.Context) error {
	for _, t := range predefinedTypes {
		if _, _, err := s.types.CreateCanisterType(ctx, t.Name, t.FullWeight, t.EmptyWeight); err != nil {
			return fmt.Errorf("seed type %q: %w", t.Name, err)
		}
	}
	return nil
}

// CheatsheetRow is one percentage band of a type's weight cheatsheet.
type CheatsheetRow struct {
	WeightRange  string             `json:"weightRange"`
	PercentRange string             `json:"percentRange"`
	ColorClass   domain.StatusClass `json:"colorClass"`
}

// Cheatsheet maps percentage bands to weight ranges for a canister type, for
// reading a kitchen scale without doing arithmetic.
type Cheatsheet struct {
	Name        string          `json:"name"`
	FullWeight  int             `json:"fullWeight"`
	EmptyWeight int             `json:"emptyWeight"`
	GasCapacity int             `json:"gasCapacity"`
	Rows        []CheatsheetRow `json:"rows"`
}

type cheatsheetBand struct {
	percentRange string
	top, bottom  float64
	colorClass   domain.StatusClass
}

var cheatsheetBands = []cheatsheetBand{
	{"100-80%", 1.0, 0.8, domain.StatusClassHigh},
	{"79-60%", 0.79, 0.6, domain.StatusClassMedium},
	{"59-40%", 0.59, 0.4, domain.StatusClassMedium},
	{"39-20%", 0.39, 0.2, domain.StatusClassLow},
	{"19-0%", 0.19, 0.0, domain.StatusClassLow},
}

// Cheatsheet builds the weight-range table for one type.
func (s *TypeService) Cheatsheet(ctx context.Context, typeID int64) (*Cheatsheet, error) {
	ct, err := s.types.GetCanisterType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, ErrCanisterTypeNotFound
	}

	capacity := domain.GasCapacity(ct.FullWeight, ct.EmptyWeight)
	rows := make([]CheatsheetRow, 0, len(cheatsheetBands))
	for _, band := range cheatsheetBands {
		top := int(float64(ct.EmptyWeight) + float64(capacity)*band.top)
		bottom := int(float64(ct.EmptyWeight) + float64(capacity)*band.bottom)
		rows = append(rows, CheatsheetRow{
			WeightRange:  fmt.Sprintf("%dg - %dg", top, bottom),
			PercentRange: band.percentRange,
			ColorClass:   band.colorClass,
		})
	}

	return &Cheatsheet{
		Name:        ct.Name,
		FullWeight:  ct.FullWeight,
		EmptyWeight: ct.EmptyWeight,
		GasCapacity: capacity,
		Rows:        rows,
	}, nil
}
