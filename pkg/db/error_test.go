package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	require.False(t, IsDuplicateKeyErr(nil))
	require.False(t, IsDuplicateKeyErr(errors.New("connection reset")))

	require.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	require.True(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23503"}))
	require.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: users.email")))
}

func TestDuplicateKeyOnInsert(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)

	type row struct {
		ID    int    `gorm:"primaryKey"`
		Email string `gorm:"uniqueIndex"`
	}
	require.NoError(t, conn.AutoMigrate(&row{}))

	require.NoError(t, conn.Create(&row{ID: 1, Email: "a@b.com"}).Error)
	dup := conn.Create(&row{ID: 2, Email: "a@b.com"}).Error
	require.Error(t, dup)
	require.True(t, IsDuplicateKeyErr(dup))
}
