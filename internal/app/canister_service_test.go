package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xivind/gas-gauge/internal/app"
	"github.com/xivind/gas-gauge/internal/domain"
)

func typeRepoWithColeman() *mockTypeRepo {
	return &mockTypeRepo{
		getFn: func(_ context.Context, id int64) (*domain.CanisterType, error) {
			if id == coleman240.ID {
				ct := coleman240
				return &ct, nil
			}
			return nil, nil
		},
	}
}

func TestCreateCanister(t *testing.T) {
	var created domain.Canister
	cr := &mockCanisterRepo{
		createFn: func(_ context.Context, c domain.Canister) error {
			created = c
			return nil
		},
	}
	svc := app.NewCanisterService(cr, typeRepoWithColeman())

	got, err := svc.Create(context.Background(), "  Camping box  ", coleman240.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != "Camping box" {
		t.Fatalf("expected trimmed label, got %q", got.Label)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("expected active, got %s", got.Status)
	}
	if len(got.ID) != 13 || !strings.HasPrefix(got.ID, "GC-") {
		t.Fatalf("unexpected id %q", got.ID)
	}
	if created.ID != got.ID {
		t.Fatalf("stored canister differs from returned one: %q vs %q", created.ID, got.ID)
	}
}

func TestCreateCanister_Validation(t *testing.T) {
	svc := app.NewCanisterService(&mockCanisterRepo{}, typeRepoWithColeman())

	tests := []struct {
		name   string
		label  string
		typeID int64
		want   error
	}{
		{"empty label", "", coleman240.ID, app.ErrInvalidLabel},
		{"whitespace label", "   ", coleman240.ID, app.ErrInvalidLabel},
		{"label too long", strings.Repeat("x", 65), coleman240.ID, app.ErrInvalidLabel},
		{"unknown type", "ok", 999, app.ErrUnknownCanisterType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.label, tc.typeID)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRenameCanister(t *testing.T) {
	canister := canisterFixture("GC-1", "Old", domain.StatusActive)
	var gotLabel string
	cr := &mockCanisterRepo{
		getFn: func(_ context.Context, _ string) (*domain.Canister, error) {
			return &canister, nil
		},
		updateLabelFn: func(_ context.Context, _ string, label string) error {
			gotLabel = label
			return nil
		},
	}
	svc := app.NewCanisterService(cr, typeRepoWithColeman())

	if err := svc.Rename(context.Background(), "GC-1", " New name "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLabel != "New name" {
		t.Fatalf("expected trimmed label, got %q", gotLabel)
	}
}

func TestRenameCanister_NotFound(t *testing.T) {
	svc := app.NewCanisterService(&mockCanisterRepo{}, typeRepoWithColeman())
	err := svc.Rename(context.Background(), "GC-missing", "New")
	if !errors.Is(err, app.ErrCanisterNotFound) {
		t.Fatalf("expected ErrCanisterNotFound, got %v", err)
	}
}

func TestStatusToggle(t *testing.T) {
	canister := canisterFixture("GC-1", "Toggle", domain.StatusActive)
	var gotStatus domain.Status
	cr := &mockCanisterRepo{
		getFn: func(_ context.Context, _ string) (*domain.Canister, error) {
			return &canister, nil
		},
		updateStatusFn: func(_ context.Context, _ string, status domain.Status) error {
			gotStatus = status
			return nil
		},
	}
	svc := app.NewCanisterService(cr, typeRepoWithColeman())

	if err := svc.MarkDepleted(context.Background(), "GC-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != domain.StatusDepleted {
		t.Fatalf("expected depleted, got %s", gotStatus)
	}

	if err := svc.Reactivate(context.Background(), "GC-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != domain.StatusActive {
		t.Fatalf("expected active, got %s", gotStatus)
	}
}

func TestDeleteCanister_NotFound(t *testing.T) {
	svc := app.NewCanisterService(&mockCanisterRepo{}, typeRepoWithColeman())
	err := svc.Delete(context.Background(), "GC-missing")
	if !errors.Is(err, app.ErrCanisterNotFound) {
		t.Fatalf("expected ErrCanisterNotFound, got %v", err)
	}
}
