package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/xivind/gas-gauge/internal/domain"
)

// Validation errors shared by the canister mutations.
var (
	ErrInvalidLabel        = errors.New("label must be 1-64 characters")
	ErrUnknownCanisterType = errors.New("canister type not found")
)

// CanisterService encapsulates the canister lifecycle use cases.
type CanisterService struct {
	canisters domain.CanisterRepository
	types     domain.CanisterTypeRepository
}

// NewCanisterService creates a CanisterService backed by the given repositories.
func NewCanisterService(cr domain.CanisterRepository, tr domain.CanisterTypeRepository) *CanisterService {
	return &CanisterService{canisters: cr, types: tr}
}

// Create registers a new canister with a generated id, active status and the
// current timestamp. The label is trimmed and must end up 1-64 characters.
func (s *CanisterService) Create(ctx context.Context, label string, typeID int64) (*domain.Canister, error) {
	label = strings.TrimSpace(label)
	if label == "" || len(label) > 64 {
		return nil, ErrInvalidLabel
	}

	ct, err := s.types.GetCanisterType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, ErrUnknownCanisterType
	}

	c := domain.Canister{
		ID:        domain.NewCanisterID(),
		Label:     label,
		TypeID:    typeID,
		Status:    domain.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := s.canisters.CreateCanister(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("created canister %q with id %s", label, c.ID)
	return &c, nil
}

// Rename updates a canister's label.
func (s *CanisterService) Rename(ctx context.Context, id, label string) error {
	label = strings.TrimSpace(label)
	if label == "" || len(label) > 64 {
		return ErrInvalidLabel
	}
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	return s.canisters.UpdateCanisterLabel(ctx, id, label)
}

// MarkDepleted flags a canister as used up.
func (s *CanisterService) MarkDepleted(ctx context.Context, id string) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	return s.canisters.UpdateCanisterStatus(ctx, id, domain.StatusDepleted)
}

// Reactivate puts a depleted canister back into service.
func (s *CanisterService) Reactivate(ctx context.Context, id string) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	return s.canisters.UpdateCanisterStatus(ctx, id, domain.StatusActive)
}

// Delete removes a canister together with all its weighings.
func (s *CanisterService) Delete(ctx context.Context, id string) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	if err := s.canisters.DeleteCanister(ctx, id); err != nil {
		return err
	}
	log.Printf("deleted canister %s", id)
	return nil
}

func (s *CanisterService) mustExist(ctx context.Context, id string) error {
	c, err := s.canisters.GetCanister(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCanisterNotFound
	}
	return nil
}
