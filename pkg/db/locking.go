package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate applies row locking inside a transaction. Postgres takes a
// FOR UPDATE row lock; the embedded backend has no FOR UPDATE syntax and
// instead serializes through its single writer connection (see Open).
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
