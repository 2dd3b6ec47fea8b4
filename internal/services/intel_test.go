package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/data/repos"
	"github.com/northquant/site-backend/internal/data/repos/testutil"
	"github.com/northquant/site-backend/internal/domain"
)

func newIntelService(t *testing.T) (IntelService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	items := repos.NewItemRepo(tx, log)
	audit := repos.NewAuditEventRepo(tx, log)
	return NewIntelService(tx, log, items, audit, nil), tx
}

func validCreateInput() CreateItemInput {
	return CreateItemInput{
		Title:       "ECB cuts deposit rate",
		Impact:      domain.ImpactHigh,
		Date:        "2026-06-05",
		Description: "Rate cut announced",
		Explanation: "The governing council moved earlier than markets priced in.",
	}
}

func TestCreateRequiredFields(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	mutations := map[string]func(*CreateItemInput){
		"title":       func(in *CreateItemInput) { in.Title = "" },
		"impact":      func(in *CreateItemInput) { in.Impact = "" },
		"date":        func(in *CreateItemInput) { in.Date = "" },
		"description": func(in *CreateItemInput) { in.Description = "" },
		"explanation": func(in *CreateItemInput) { in.Explanation = "" },
	}
	for field, mutate := range mutations {
		in := validCreateInput()
		mutate(&in)
		_, err := svc.Create(ctx, in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Create missing %s: err = %v, want ValidationError", field, err)
		}
	}
}

func TestCreateImpactEnum(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	for _, bad := range []string{"Severe", "high", "LOW", "medium "} {
		in := validCreateInput()
		in.Impact = bad
		_, err := svc.Create(ctx, in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Create impact %q: err = %v, want ValidationError", bad, err)
		}
	}

	for _, ok := range []string{domain.ImpactHigh, domain.ImpactMedium, domain.ImpactLow} {
		in := validCreateInput()
		in.Impact = ok
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create impact %q: %v", ok, err)
		}
	}
}

func TestCreateDisplayOrderDefaults(t *testing.T) {
	svc, tx := newIntelService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create on empty store: %v", err)
	}
	if first.DisplayOrder != 1 {
		t.Fatalf("empty-store display_order = %d, want 1", first.DisplayOrder)
	}

	testutil.SeedItem(t, ctx, tx, 7, "2026-01-01", true)

	second, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.DisplayOrder != 8 {
		t.Fatalf("default display_order = %d, want max+1 = 8", second.DisplayOrder)
	}

	explicit := 3
	in := validCreateInput()
	in.DisplayOrder = &explicit
	third, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create explicit order: %v", err)
	}
	if third.DisplayOrder != 3 {
		t.Fatalf("explicit display_order = %d, want 3", third.DisplayOrder)
	}
}

func TestCreateIsActiveDefault(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("default is_active = false, want true")
	}

	inactive := false
	in := validCreateInput()
	in.IsActive = &inactive
	created, err = svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	if created.IsActive {
		t.Fatalf("explicit is_active=false not honored")
	}
}

func TestUpdateSparse(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "BoJ intervenes in FX market"
	updated, err := svc.Update(ctx, created.ID, UpdateItemInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title = %q, want %q", updated.Title, title)
	}
	if updated.Impact != created.Impact || updated.Date != created.Date ||
		updated.Description != created.Description || updated.Explanation != created.Explanation {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "Catastrophic"
	_, err = svc.Update(ctx, created.ID, UpdateItemInput{Impact: &bad})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Update invalid impact: err = %v, want ValidationError", err)
	}

	_, err = svc.Update(ctx, created.ID, UpdateItemInput{})
	if !errors.As(err, &vErr) || vErr.Msg != "No fields to update" {
		t.Fatalf("empty Update: err = %v, want 'No fields to update'", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	title := "x"
	_, err := svc.Update(ctx, uuid.New(), UpdateItemInput{Title: &title})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Update missing id: err = %v, want ErrItemNotFound", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	for _, it := range all {
		if it.ID == created.ID {
			t.Fatalf("deleted item %s still listed", created.ID)
		}
	}

	// Deleting an absent id is indistinguishable from success.
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if err := svc.Delete(ctx, uuid.New()); err != nil {
		t.Fatalf("Delete unknown id: %v", err)
	}
}

func TestListPublicFiltersAndCaps(t *testing.T) {
	svc, tx := newIntelService(t)
	ctx := context.Background()

	inactive := testutil.SeedItem(t, ctx, tx, 0, "2026-05-01", false)
	for i := 0; i < PublicListLimit+5; i++ {
		testutil.SeedItem(t, ctx, tx, i+1, fmt.Sprintf("2026-01-%02d", i%28+1), true)
	}

	items, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(items) != PublicListLimit {
		t.Fatalf("ListPublic len = %d, want %d", len(items), PublicListLimit)
	}
	for i, it := range items {
		if it.ID == inactive.ID {
			t.Fatalf("ListPublic returned inactive item")
		}
		if i > 0 && it.DisplayOrder < items[i-1].DisplayOrder {
			t.Fatalf("ListPublic not ordered by display_order at %d", i)
		}
		if i > 0 && it.DisplayOrder == items[i-1].DisplayOrder && it.Date > items[i-1].Date {
			t.Fatalf("ListPublic tie not ordered by date desc at %d", i)
		}
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newIntelService(t)
	ctx := context.Background()

	order := 5
	inactive := false
	in := validCreateInput()
	in.DisplayOrder = &order
	in.IsActive = &inactive

	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("created item has no id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("created item missing timestamps")
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	var got *domain.IntelItem
	for _, it := range all {
		if it.ID == created.ID {
			got = it
			break
		}
	}
	if got == nil {
		t.Fatalf("created item not in admin listing")
	}
	if got.Title != in.Title || got.Impact != in.Impact || got.Date != in.Date ||
		got.Description != in.Description || got.Explanation != in.Explanation ||
		got.DisplayOrder != order || got.IsActive != inactive {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
