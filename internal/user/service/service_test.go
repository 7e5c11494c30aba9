package service

import (
	"context"
	"testing"
	"time"

	authdomain "github.com/formfillhq/formfill/internal/auth/domain"
	"github.com/formfillhq/formfill/internal/clock"
	mappingdomain "github.com/formfillhq/formfill/internal/mapping/domain"
	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	"github.com/formfillhq/formfill/internal/user/domain"
	"github.com/formfillhq/formfill/internal/user/repository"
	"github.com/formfillhq/formfill/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&domain.User{},
		&authdomain.Session{},
		&profiledomain.Profile{},
		&mappingdomain.PDFMapping{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), dbConn, repository.Provide(), clk), dbConn
}

func TestEnsureCreatesOnce(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Ensure(context.Background(), "Alice@Example.com")
	if err != nil {
		t.Fatalf("failed to ensure: %v", err)
	}
	if first.Email != "alice@example.com" {
		t.Fatalf("email must be lowercased, got %q", first.Email)
	}

	second, err := svc.Ensure(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("failed to re-ensure: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same account, got %s and %s", first.ID, second.ID)
	}
}

func TestEnsureRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Ensure(context.Background(), "not-an-email"); err != domain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetByID(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetProAndUpdateContact(t *testing.T) {
	svc, _ := newTestService(t)

	account, err := svc.Ensure(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("failed to ensure: %v", err)
	}

	if err := svc.SetPro(context.Background(), account.ID, true, "cus_1"); err != nil {
		t.Fatalf("failed to set pro: %v", err)
	}
	name, phone := "Alice Smith", "555-0100"
	if err := svc.UpdateContact(context.Background(), account.ID, &name, &phone); err != nil {
		t.Fatalf("failed to update contact: %v", err)
	}

	got, err := svc.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !got.IsPro || got.CustomerRef != "cus_1" || got.FullName != "Alice Smith" || got.Phone != "555-0100" {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestDeleteAllDataCascades(t *testing.T) {
	svc, dbConn := newTestService(t)

	victim, err := svc.Ensure(context.Background(), "victim@example.com")
	if err != nil {
		t.Fatalf("failed to ensure victim: %v", err)
	}
	bystander, err := svc.Ensure(context.Background(), "bystander@example.com")
	if err != nil {
		t.Fatalf("failed to ensure bystander: %v", err)
	}

	seed := func(userID, suffix string) {
		if err := dbConn.Create(&authdomain.Session{ID: "sess-" + suffix, UserID: userID, ExpiresAt: 9999999999}).Error; err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}
		if err := dbConn.Create(&profiledomain.Profile{ID: "prof-" + suffix, UserID: userID, Name: "p"}).Error; err != nil {
			t.Fatalf("failed to seed profile: %v", err)
		}
		if err := dbConn.Create(&mappingdomain.PDFMapping{ID: "map-" + suffix, UserID: userID, PDFDigest: "digest-" + suffix}).Error; err != nil {
			t.Fatalf("failed to seed mapping: %v", err)
		}
	}
	seed(victim.ID, "v")
	seed(bystander.ID, "b")

	if err := svc.DeleteAllData(context.Background(), victim.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), victim.ID); err != domain.ErrNotFound {
		t.Fatalf("expected user gone, got %v", err)
	}
	var count int64
	for _, probe := range []struct {
		model any
		where string
	}{
		{&authdomain.Session{}, "user_id = ?"},
		{&profiledomain.Profile{}, "user_id = ?"},
		{&mappingdomain.PDFMapping{}, "user_id = ?"},
	} {
		if err := dbConn.Model(probe.model).Where(probe.where, victim.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no rows for victim in %T", probe.model)
		}
		if err := dbConn.Model(probe.model).Where(probe.where, bystander.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Fatalf("bystander data must survive in %T", probe.model)
		}
	}
}
