// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"sort"

	"github.com/xivind/gas-gauge/internal/domain"
)

// ErrCanisterNotFound indicates that the requested canister does not exist.
var ErrCanisterNotFound = errors.New("canister not found")

// ViewService assembles the read models for the dashboard and the canister
// detail page. It owns no state beyond its repositories and performs only
// pure computation over per-call snapshots, so it is safe for concurrent use.
type ViewService struct {
	canisters domain.CanisterRepository
	types     domain.CanisterTypeRepository
	weighings domain.WeighingRepository
}

// NewViewService creates a ViewService backed by the given repositories.
func NewViewService(cr domain.CanisterRepository, tr domain.CanisterTypeRepository, wr domain.WeighingRepository) *ViewService {
	return &ViewService{canisters: cr, types: tr, weighings: wr}
}

// DashboardRow is one canister on the dashboard with its derived fill state.
// RemainingPercentage is nil when the canister has never been weighed or its
// type reference dangles; zero is a valid reading and means empty.
type DashboardRow struct {
	Canister            domain.Canister     `json:"canister"`
	CanisterType        *domain.CanisterType `json:"canisterType"`
	LatestWeighing      *domain.Weighing    `json:"latestWeighing"`
	RemainingPercentage *float64            `json:"remainingPercentage"`
	StatusClass         domain.StatusClass  `json:"statusClass"`
	IsDepleted          bool                `json:"isDepleted"`
}

// Dashboard is the full dashboard read model: all canisters with derived
// state, the type catalog for the create form, and a suggested label.
type Dashboard struct {
	Canisters      []DashboardRow        `json:"canisters"`
	CanisterTypes  []domain.CanisterType `json:"canisterTypes"`
	SuggestedLabel string                `json:"suggestedLabel"`
}

// EnrichedWeighing is a weighing with its point-in-time metrics, each
// computed against the type's rated capacity. The metric pointers are nil
// only when the canister's type is missing.
type EnrichedWeighing struct {
	domain.Weighing
	RemainingGas          *int     `json:"remainingGas"`
	RemainingPercentage   *float64 `json:"remainingPercentage"`
	ConsumptionPercentage *float64 `json:"consumptionPercentage"`
}

// CanisterDetail is the single-canister read model: the canister, its type,
// the full weighing history newest first, and the overall status derived
// from the latest weighing.
type CanisterDetail struct {
	Canister       domain.Canister      `json:"canister"`
	CanisterType   *domain.CanisterType `json:"canisterType"`
	Weighings      []EnrichedWeighing   `json:"weighings"`
	LatestWeighing *EnrichedWeighing    `json:"latestWeighing"`
	StatusClass    domain.StatusClass   `json:"statusClass"`
}

// Dashboard builds the dashboard read model. Derived values are recomputed
// on every call; nothing is cached. Rows are sorted active before depleted,
// then by label, and the order is stable.
func (s *ViewService) Dashboard(ctx context.Context) (*Dashboard, error) {
	canisters, err := s.canisters.ListCanisters(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.types.ListCanisterTypes(ctx)
	if err != nil {
		return nil, err
	}

	typeByID := make(map[int64]*domain.CanisterType, len(types))
	for i := range types {
		typeByID[types[i].ID] = &types[i]
	}

	rows := make([]DashboardRow, 0, len(canisters))
	for _, c := range canisters {
		ct := typeByID[c.TypeID]
		latest, err := s.weighings.LatestWeighingForCanister(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		row := DashboardRow{
			Canister:       c,
			CanisterType:   ct,
			LatestWeighing: latest,
			StatusClass:    domain.StatusClassNone,
			IsDepleted:     c.Status == domain.StatusDepleted,
		}
		if ct != nil && latest != nil {
			capacity := domain.GasCapacity(ct.FullWeight, ct.EmptyWeight)
			p := domain.RemainingPercentage(latest.Weight, ct.EmptyWeight, capacity)
			row.RemainingPercentage = &p
			row.StatusClass = domain.ClassifyLevel(&p)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsDepleted != rows[j].IsDepleted {
			return !rows[i].IsDepleted
		}
		return rows[i].Canister.Label < rows[j].Canister.Label
	})

	return &Dashboard{
		Canisters:      rows,
		CanisterTypes:  types,
		SuggestedLabel: domain.NewCanisterID()[:7],
	}, nil
}

// CanisterDetail builds the detail read model for one canister. An unknown
// id returns ErrCanisterNotFound without touching the other repositories.
// A missing type degrades to absent metrics rather than failing the view.
func (s *ViewService) CanisterDetail(ctx context.Context, canisterID string) (*CanisterDetail, error) {
	canister, err := s.canisters.GetCanister(ctx, canisterID)
	if err != nil {
		return nil, err
	}
	if canister == nil {
		return nil, ErrCanisterNotFound
	}

	ct, err := s.types.GetCanisterType(ctx, canister.TypeID)
	if err != nil {
		return nil, err
	}
	raw, err := s.weighings.ListWeighingsForCanister(ctx, canisterID)
	if err != nil {
		return nil, err
	}

	weighings := make([]EnrichedWeighing, 0, len(raw))
	for _, w := range raw {
		e := EnrichedWeighing{Weighing: w}
		if ct != nil {
			capacity := domain.GasCapacity(ct.FullWeight, ct.EmptyWeight)
			gas := domain.RemainingGas(w.Weight, ct.EmptyWeight)
			remaining := domain.RemainingPercentage(w.Weight, ct.EmptyWeight, capacity)
			consumed := domain.ConsumptionPercentage(remaining)
			e.RemainingGas = &gas
			e.RemainingPercentage = &remaining
			e.ConsumptionPercentage = &consumed
		}
		weighings = append(weighings, e)
	}

	detail := &CanisterDetail{
		Canister:     *canister,
		CanisterType: ct,
		Weighings:    weighings,
		StatusClass:  domain.StatusClassNone,
	}
	if len(weighings) > 0 {
		detail.LatestWeighing = &weighings[0]
		detail.StatusClass = domain.ClassifyLevel(weighings[0].RemainingPercentage)
	}
	return detail, nil
}
