package service

import (
	"context"
	"testing"
	"time"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/profile/domain"
	"github.com/formfillhq/formfill/internal/profile/repository"
	"github.com/formfillhq/formfill/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Profile{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), dbConn, repository.Provide(), clk), clk
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{
		UserID: "user-1",
		Name:   "Personal",
		Data:   map[string]any{"email": "a@b.com", "first_name": "Alice"},
	})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Name != "Personal" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if got.Data["email"] != "a@b.com" {
		t.Fatalf("unexpected data %v", got.Data)
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), domain.CreateRequest{UserID: "user-1", Name: "   "}); err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestOwnershipScoping(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{UserID: "user-1", Name: "Personal"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", created.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if _, err := svc.Update(context.Background(), domain.UpdateRequest{UserID: "user-2", ID: created.ID, Data: map[string]any{"x": "y"}}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}

	// Foreign delete is a no-op; the row survives.
	if err := svc.Delete(context.Background(), "user-2", created.ID); err != nil {
		t.Fatalf("foreign delete should be silent: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", created.ID); err != nil {
		t.Fatalf("row should survive foreign delete: %v", err)
	}
}

func TestPartialUpdateBumpsUpdatedAt(t *testing.T) {
	svc, clk := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{
		UserID: "user-1",
		Name:   "Personal",
		Data:   map[string]any{"email": "a@b.com"},
	})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	clk.Advance(time.Hour)
	name := "Work"
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{
		UserID: "user-1",
		ID:     created.ID,
		Name:   &name,
	})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if updated.Name != "Work" {
		t.Fatalf("unexpected name %q", updated.Name)
	}
	if updated.Data["email"] != "a@b.com" {
		t.Fatal("data must survive a name-only update")
	}
	if updated.UpdatedAt <= created.UpdatedAt {
		t.Fatal("updated_at must advance")
	}

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Name != "Work" || got.UpdatedAt != updated.UpdatedAt {
		t.Fatalf("persisted row mismatch: %+v", got)
	}
}

func TestDataReplaceNotMerge(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{
		UserID: "user-1",
		Name:   "Personal",
		Data:   map[string]any{"email": "a@b.com", "phone": "555"},
	})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	if _, err := svc.Update(context.Background(), domain.UpdateRequest{
		UserID: "user-1",
		ID:     created.ID,
		Data:   map[string]any{"email": "new@b.com"},
	}); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Data["email"] != "new@b.com" {
		t.Fatalf("unexpected data %v", got.Data)
	}
	if _, ok := got.Data["phone"]; ok {
		t.Fatal("data update must replace, not merge")
	}
}

func TestListOrderedByRecency(t *testing.T) {
	svc, clk := newTestService(t)

	first, err := svc.Create(context.Background(), domain.CreateRequest{UserID: "user-1", Name: "First"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	clk.Advance(time.Minute)
	if _, err := svc.Create(context.Background(), domain.CreateRequest{UserID: "user-1", Name: "Second"}); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	clk.Advance(time.Minute)
	name := "First, touched"
	if _, err := svc.Update(context.Background(), domain.UpdateRequest{UserID: "user-1", ID: first.ID, Name: &name}); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	profiles, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != first.ID {
		t.Fatal("most recently updated profile must sort first")
	}
}
