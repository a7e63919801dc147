// Package databasetest opens throwaway sqlite databases with the production schema for repository tests.
package databasetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"koita-chat-api/internal/infrastructure/database/dbschema"
	"koita-chat-api/internal/infrastructure/database/transaction"
)

var counter atomic.Int64

// NewSQLite returns a migrated in-memory database private to the test.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, _ := openSQLite(t)
	return db
}

func openSQLite(t testing.TB) (*gorm.DB, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:koita_test_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(dbschema.Models()...))
	return db, dsn
}

// NewDatabase wraps NewSQLite in the transaction-aware handle repositories use.
func NewDatabase(t testing.TB) *transaction.Database {
	t.Helper()
	return transaction.NewDatabase(NewSQLite(t))
}

// NewDatabaseWithLaggingReplica registers a second, migrated but never written sqlite database as a
// dbresolver replica. Plain reads see none of the primary's rows, as a replica that has not caught up.
func NewDatabaseWithLaggingReplica(t testing.TB) *transaction.Database {
	t.Helper()

	primary := NewSQLite(t)
	_, replicaDSN := openSQLite(t)

	require.NoError(t, primary.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(replicaDSN)},
	})))
	return transaction.NewDatabase(primary)
}
