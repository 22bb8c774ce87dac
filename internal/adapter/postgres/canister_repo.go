package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xivind/gas-gauge/internal/domain"
)

// ListCanisters returns all canisters.
func (d *DB) ListCanisters(ctx context.Context) ([]domain.Canister, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, label, canister_type_id, status, created_at FROM canisters;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Canister
	for rows.Next() {
		var c domain.Canister
		if err := rows.Scan(&c.ID, &c.Label, &c.TypeID, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCanister returns a canister by id, or nil if absent.
func (d *DB) GetCanister(ctx context.Context, id string) (*domain.Canister, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, label, canister_type_id, status, created_at FROM canisters WHERE id=$1;", id)

	var c domain.Canister
	if err := row.Scan(&c.ID, &c.Label, &c.TypeID, &c.Status, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CreateCanister inserts a new canister.
func (d *DB) CreateCanister(ctx context.Context, c domain.Canister) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO canisters(id, label, canister_type_id, status, created_at) VALUES($1, $2, $3, $4, $5);",
		c.ID, c.Label, c.TypeID, c.Status, c.CreatedAt.UTC(),
	)
	return err
}

// UpdateCanisterLabel changes a canister's label.
func (d *DB) UpdateCanisterLabel(ctx context.Context, id, label string) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE canisters SET label=$1 WHERE id=$2;", label, id)
	return err
}

// UpdateCanisterStatus changes a canister's lifecycle status.
func (d *DB) UpdateCanisterStatus(ctx context.Context, id string, status domain.Status) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE canisters SET status=$1 WHERE id=$2;", status, id)
	return err
}

// DeleteCanister removes a canister and all its weighings in one transaction.
func (d *DB) DeleteCanister(ctx context.Context, id string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM weighings WHERE canister_id=$1;", id); err != nil {
		return fmt.Errorf("delete weighings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM canisters WHERE id=$1;", id); err != nil {
		return fmt.Errorf("delete canister: %w", err)
	}
	return tx.Commit()
}
