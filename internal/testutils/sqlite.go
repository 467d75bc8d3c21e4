package testutils

import (
	"testing"

	"business-hub-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory SQLite database with the production
// schema. The pool holds a single connection, so code running inside a
// transaction must only use the transaction handle.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Initialize(dsn, &database.Options{
		LogLevel:     logger.Silent,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
