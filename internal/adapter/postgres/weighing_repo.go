package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xivind/gas-gauge/internal/domain"
)

func scanWeighing(row interface{ Scan(...any) error }) (*domain.Weighing, error) {
	var w domain.Weighing
	var comment sql.NullString
	if err := row.Scan(&w.ID, &w.CanisterID, &w.Weight, &comment, &w.RecordedAt); err != nil {
		return nil, err
	}
	w.Comment = comment.String
	return &w, nil
}

// ListWeighingsForCanister returns a canister's weighings, newest recorded
// date first. Same-day ties break on id descending.
func (d *DB) ListWeighingsForCanister(ctx context.Context, canisterID string) ([]domain.Weighing, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, canister_id, weight, comment, recorded_at FROM weighings WHERE canister_id=$1 ORDER BY recorded_at DESC, id DESC;",
		canisterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Weighing
	for rows.Next() {
		w, err := scanWeighing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// LatestWeighingForCanister returns the newest weighing by recorded date, or
// nil if the canister has none.
func (d *DB) LatestWeighingForCanister(ctx context.Context, canisterID string) (*domain.Weighing, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, canister_id, weight, comment, recorded_at FROM weighings WHERE canister_id=$1 ORDER BY recorded_at DESC, id DESC LIMIT 1;",
		canisterID)

	w, err := scanWeighing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// GetWeighing returns a weighing by id, or nil if absent.
func (d *DB) GetWeighing(ctx context.Context, id int64) (*domain.Weighing, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, canister_id, weight, comment, recorded_at FROM weighings WHERE id=$1;", id)

	w, err := scanWeighing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// CreateWeighing inserts a new weighing and returns its id.
func (d *DB) CreateWeighing(ctx context.Context, w domain.Weighing) (int64, error) {
	comment := sql.NullString{String: w.Comment, Valid: w.Comment != ""}
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weighings(canister_id, weight, comment, recorded_at) VALUES($1, $2, $3, $4) RETURNING id;",
		w.CanisterID, w.Weight, comment, w.RecordedAt,
	).Scan(&id)
	return id, err
}

// DeleteWeighing removes a single weighing.
func (d *DB) DeleteWeighing(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM weighings WHERE id=$1;", id)
	return err
}
