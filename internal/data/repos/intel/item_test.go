package intel

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/northquant/site-backend/internal/data/repos/testutil"
	"github.com/northquant/site-backend/internal/platform/dbctx"
)

func TestItemRepoFeedOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	// Same display_order resolves by date descending.
	a := testutil.SeedItem(t, ctx, tx, 2, "2026-01-10", true)
	b := testutil.SeedItem(t, ctx, tx, 1, "2026-03-01", true)
	c := testutil.SeedItem(t, ctx, tx, 2, "2026-02-20", true)
	inactive := testutil.SeedItem(t, ctx, tx, 0, "2026-04-01", false)

	rows, err := repo.ListActive(dbc, 100)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ListActive len = %d, want 3", len(rows))
	}
	want := []uuid.UUID{b.ID, c.ID, a.ID}
	for i, id := range want {
		if rows[i].ID != id {
			t.Fatalf("ListActive[%d] = %s, want %s", i, rows[i].ID, id)
		}
	}
	for _, row := range rows {
		if row.ID == inactive.ID {
			t.Fatalf("ListActive returned inactive item %s", row.ID)
		}
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListAll len = %d, want 4", len(all))
	}
	if all[0].ID != inactive.ID {
		t.Fatalf("ListAll[0] = %s, want inactive item %s", all[0].ID, inactive.ID)
	}
}

func TestItemRepoListActiveLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	for i := 0; i < 5; i++ {
		testutil.SeedItem(t, ctx, tx, i, "2026-01-01", true)
	}
	rows, err := repo.ListActive(dbc, 3)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ListActive len = %d, want 3", len(rows))
	}
}

func TestItemRepoMaxDisplayOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	maxOrder, err := repo.MaxDisplayOrder(dbc)
	if err != nil {
		t.Fatalf("MaxDisplayOrder empty: %v", err)
	}
	if maxOrder != 0 {
		t.Fatalf("MaxDisplayOrder empty = %d, want 0", maxOrder)
	}

	testutil.SeedItem(t, ctx, tx, 4, "2026-01-01", true)
	testutil.SeedItem(t, ctx, tx, 9, "2026-01-02", false)

	maxOrder, err = repo.MaxDisplayOrder(dbc)
	if err != nil {
		t.Fatalf("MaxDisplayOrder: %v", err)
	}
	if maxOrder != 9 {
		t.Fatalf("MaxDisplayOrder = %d, want 9 (inactive rows count)", maxOrder)
	}
}

func TestItemRepoUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	it := testutil.SeedItem(t, ctx, tx, 1, "2026-01-01", true)

	rows, err := repo.UpdateFields(dbc, it.ID, map[string]interface{}{
		"title":     "CPI beats expectations",
		"is_active": false,
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if rows != 1 {
		t.Fatalf("UpdateFields rows = %d, want 1", rows)
	}

	got, err := repo.GetByID(dbc, it.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: row=%v err=%v", got, err)
	}
	if got.Title != "CPI beats expectations" || got.IsActive {
		t.Fatalf("update not applied: title=%q is_active=%v", got.Title, got.IsActive)
	}
	if got.Date != it.Date {
		t.Fatalf("untouched field changed: date=%q want %q", got.Date, it.Date)
	}

	rows, err = repo.UpdateFields(dbc, uuid.New(), map[string]interface{}{"title": "x"})
	if err != nil {
		t.Fatalf("UpdateFields missing row: %v", err)
	}
	if rows != 0 {
		t.Fatalf("UpdateFields missing row rows = %d, want 0", rows)
	}
}

func TestItemRepoDeleteByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	it := testutil.SeedItem(t, ctx, tx, 1, "2026-01-01", true)
	if err := repo.DeleteByID(dbc, it.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if got, err := repo.GetByID(dbc, it.ID); err != nil || got != nil {
		t.Fatalf("after delete GetByID: row=%v err=%v", got, err)
	}
	// Deleting the same id again is not an error.
	if err := repo.DeleteByID(dbc, it.ID); err != nil {
		t.Fatalf("DeleteByID twice: %v", err)
	}
}
