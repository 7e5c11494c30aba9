package migration

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authdomain "github.com/formfillhq/formfill/internal/auth/domain"
	mappingdomain "github.com/formfillhq/formfill/internal/mapping/domain"
	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
)

func openEnforcing(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return conn
}

func TestUserDeleteCascadesAtSchemaLevel(t *testing.T) {
	conn := openEnforcing(t)
	if err := Run(conn); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	owner := &userdomain.User{ID: "u1", Email: "owner@example.com", CreatedAt: 1}
	if err := conn.Create(owner).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	rows := []any{
		&authdomain.Session{ID: "s1", UserID: owner.ID, CreatedAt: 1, ExpiresAt: 100},
		&profiledomain.Profile{ID: "p1", UserID: owner.ID, Name: "Work", Data: datatypes.JSONMap{}, CreatedAt: 1, UpdatedAt: 1},
		&mappingdomain.PDFMapping{ID: "m1", UserID: owner.ID, PDFDigest: "deadbeefdeadbeef", Mapping: datatypes.JSONMap{}, CreatedAt: 1, UpdatedAt: 1},
	}
	for _, row := range rows {
		if err := conn.Create(row).Error; err != nil {
			t.Fatalf("failed to seed row %T: %v", row, err)
		}
	}

	if err := conn.Exec("DELETE FROM users WHERE id = ?", owner.ID).Error; err != nil {
		t.Fatalf("failed to delete user row: %v", err)
	}

	for _, table := range []string{"sessions", "profiles", "pdf_mappings"} {
		var count int64
		if err := conn.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s emptied by cascade, found %d rows", table, count)
		}
	}
}

func TestOrphanRowRejected(t *testing.T) {
	conn := openEnforcing(t)
	if err := Run(conn); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	err := conn.Create(&authdomain.Session{ID: "s1", UserID: "no-such-user", CreatedAt: 1, ExpiresAt: 100}).Error
	if err == nil {
		t.Fatal("expected session insert with dangling user_id to fail")
	}
}
