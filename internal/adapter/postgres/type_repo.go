package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xivind/gas-gauge/internal/domain"
)

// ListCanisterTypes returns the full type catalog.
func (d *DB) ListCanisterTypes(ctx context.Context) ([]domain.CanisterType, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, full_weight, empty_weight FROM canister_types ORDER BY id;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CanisterType
	for rows.Next() {
		var t domain.CanisterType
		if err := rows.Scan(&t.ID, &t.Name, &t.FullWeight, &t.EmptyWeight); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetCanisterType returns a canister type by id, or nil if absent.
func (d *DB) GetCanisterType(ctx context.Context, id int64) (*domain.CanisterType, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, name, full_weight, empty_weight FROM canister_types WHERE id=$1;", id)

	var t domain.CanisterType
	if err := row.Scan(&t.ID, &t.Name, &t.FullWeight, &t.EmptyWeight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// CreateCanisterType inserts a new type, or returns the existing row with
// the same name. The insert and the fallback lookup race benignly: a
// conflicting concurrent insert makes the lookup succeed.
func (d *DB) CreateCanisterType(ctx context.Context, name string, fullWeight, emptyWeight int) (*domain.CanisterType, bool, error) {
	row := d.sql.QueryRowContext(ctx,
		"INSERT INTO canister_types(name, full_weight, empty_weight) VALUES($1, $2, $3) ON CONFLICT (name) DO NOTHING RETURNING id;",
		name, fullWeight, emptyWeight,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, err
		}
		existing := d.sql.QueryRowContext(ctx,
			"SELECT id, name, full_weight, empty_weight FROM canister_types WHERE name=$1;", name)
		var t domain.CanisterType
		if err := existing.Scan(&t.ID, &t.Name, &t.FullWeight, &t.EmptyWeight); err != nil {
			return nil, false, err
		}
		return &t, false, nil
	}

	return &domain.CanisterType{ID: id, Name: name, FullWeight: fullWeight, EmptyWeight: emptyWeight}, true, nil
}

// DeleteCanisterType removes a canister type.
func (d *DB) DeleteCanisterType(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM canister_types WHERE id=$1;", id)
	return err
}
