package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/xivind/gas-gauge/internal/adapter/memory"
	"github.com/xivind/gas-gauge/internal/domain"
)

func seedCanister(t *testing.T, db *memory.DB, id string) {
	t.Helper()
	err := db.CreateCanister(context.Background(), domain.Canister{
		ID:        id,
		Label:     "Test " + id,
		TypeID:    1,
		Status:    domain.StatusActive,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCanisterCRUD(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	seedCanister(t, db, "GC-1")

	got, err := db.GetCanister(ctx, "GC-1")
	if err != nil || got == nil {
		t.Fatalf("expected canister, got %v, %v", got, err)
	}

	if err := db.UpdateCanisterLabel(ctx, "GC-1", "Renamed"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpdateCanisterStatus(ctx, "GC-1", domain.StatusDepleted); err != nil {
		t.Fatal(err)
	}
	got, _ = db.GetCanister(ctx, "GC-1")
	if got.Label != "Renamed" || got.Status != domain.StatusDepleted {
		t.Fatalf("updates not applied: %+v", got)
	}

	missing, err := db.GetCanister(ctx, "GC-missing")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for missing canister, got %v, %v", missing, err)
	}
}

func TestCreateCanister_DuplicateID(t *testing.T) {
	db := memory.New()
	seedCanister(t, db, "GC-1")

	err := db.CreateCanister(context.Background(), domain.Canister{ID: "GC-1"})
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestDeleteCanister_CascadesWeighings(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	seedCanister(t, db, "GC-1")
	seedCanister(t, db, "GC-2")
	for _, cid := range []string{"GC-1", "GC-1", "GC-2"} {
		if _, err := db.CreateWeighing(ctx, domain.Weighing{CanisterID: cid, Weight: 300, RecordedAt: "2026-08-20"}); err != nil {
			t.Fatal(err)
		}
	}

	if err := db.DeleteCanister(ctx, "GC-1"); err != nil {
		t.Fatal(err)
	}

	gone, _ := db.GetCanister(ctx, "GC-1")
	if gone != nil {
		t.Fatal("expected canister to be deleted")
	}
	orphans, _ := db.ListWeighingsForCanister(ctx, "GC-1")
	if len(orphans) != 0 {
		t.Fatalf("expected cascade delete, found %d weighings", len(orphans))
	}
	kept, _ := db.ListWeighingsForCanister(ctx, "GC-2")
	if len(kept) != 1 {
		t.Fatalf("expected other canister's weighings to survive, got %d", len(kept))
	}
}

func TestWeighingOrder_ByRecordedDateNotInsertion(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	seedCanister(t, db, "GC-1")

	// Insert out of order, including a back-dated entry last.
	days := []string{"2026-08-10", "2026-08-20", "2026-08-01"}
	for i, day := range days {
		if _, err := db.CreateWeighing(ctx, domain.Weighing{CanisterID: "GC-1", Weight: 300 + i, RecordedAt: day}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := db.ListWeighingsForCanister(ctx, "GC-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-08-20", "2026-08-10", "2026-08-01"}
	for i, w := range list {
		if w.RecordedAt != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], w.RecordedAt)
		}
	}

	latest, err := db.LatestWeighingForCanister(ctx, "GC-1")
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.RecordedAt != "2026-08-20" {
		t.Fatalf("expected latest by recorded date, got %+v", latest)
	}
}

func TestLatestWeighing_NoneRecorded(t *testing.T) {
	db := memory.New()
	seedCanister(t, db, "GC-1")

	latest, err := db.LatestWeighingForCanister(context.Background(), "GC-1")
	if err != nil || latest != nil {
		t.Fatalf("expected (nil, nil), got %v, %v", latest, err)
	}
}

func TestDeleteWeighing(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	seedCanister(t, db, "GC-1")

	id, err := db.CreateWeighing(ctx, domain.Weighing{CanisterID: "GC-1", Weight: 300, RecordedAt: "2026-08-20"})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteWeighing(ctx, id); err != nil {
		t.Fatal(err)
	}
	got, _ := db.GetWeighing(ctx, id)
	if got != nil {
		t.Fatal("expected weighing to be deleted")
	}
}

func TestCreateCanisterType_GetOrCreate(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	first, created, err := db.CreateCanisterType(ctx, "Coleman 240g", 361, 122)
	if err != nil || !created {
		t.Fatalf("expected fresh creation, got created=%v, err=%v", created, err)
	}

	second, created, err := db.CreateCanisterType(ctx, "Coleman 240g", 999, 1)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected existing type, not a new one")
	}
	if second.ID != first.ID || second.FullWeight != 361 {
		t.Fatalf("expected original row back, got %+v", second)
	}

	types, _ := db.ListCanisterTypes(ctx)
	if len(types) != 1 {
		t.Fatalf("expected 1 type, got %d", len(types))
	}
}

func TestSessions_Expiry(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	if err := db.CreateSession(ctx, 1, "live", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateSession(ctx, 1, "stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteExpiredSessions(ctx); err != nil {
		t.Fatal(err)
	}

	live, _ := db.GetSession(ctx, "live")
	if live == nil {
		t.Fatal("expected live session to survive")
	}
	stale, _ := db.GetSession(ctx, "stale")
	if stale != nil {
		t.Fatal("expected stale session to be purged")
	}
}
