package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xivind/gas-gauge/internal/domain"
)

// Weighing errors.
var (
	ErrInvalidWeight     = errors.New("weight must be > 0")
	ErrInvalidRecordedAt = errors.New("recordedAt must be a YYYY-MM-DD date")
	ErrWeighingNotFound  = errors.New("weighing not found")
)

// WeighingService encapsulates the weighing use cases. Weighings are
// append-only: corrections are new rows, never updates.
type WeighingService struct {
	canisters domain.CanisterRepository
	weighings domain.WeighingRepository
}

// NewWeighingService creates a WeighingService backed by the given repositories.
func NewWeighingService(cr domain.CanisterRepository, wr domain.WeighingRepository) *WeighingService {
	return &WeighingService{canisters: cr, weighings: wr}
}

// Record stores a new weighing for a canister. recordedAt may be back-dated;
// recency on reads is by recorded date, not insertion order.
func (s *WeighingService) Record(ctx context.Context, canisterID string, weight int, recordedAt, comment string) (*domain.Weighing, error) {
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}
	if _, err := time.Parse("2006-01-02", recordedAt); err != nil {
		return nil, ErrInvalidRecordedAt
	}

	c, err := s.canisters.GetCanister(ctx, canisterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCanisterNotFound
	}

	w := domain.Weighing{
		CanisterID: canisterID,
		Weight:     weight,
		Comment:    comment,
		RecordedAt: recordedAt,
	}
	id, err := s.weighings.CreateWeighing(ctx, w)
	if err != nil {
		return nil, err
	}
	w.ID = id
	log.Printf("recorded weighing for canister %s: %dg", canisterID, weight)
	return &w, nil
}

// Delete removes a single weighing and returns it, so callers can redirect
// back to the owning canister.
func (s *WeighingService) Delete(ctx context.Context, id int64) (*domain.Weighing, error) {
	w, err := s.weighings.GetWeighing(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWeighingNotFound
	}
	if err := s.weighings.DeleteWeighing(ctx, id); err != nil {
		return nil, err
	}
	return w, nil
}
