// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nourish/planner/internal/infrastructure/persistence/sqlite"
)

// TestDatabase provides an in-memory database instance with cleanup
type TestDatabase struct {
	GormDB *gorm.DB
	t      *testing.T
}

// SetupTestDatabase creates a migrated in-memory SQLite database
func SetupTestDatabase(t *testing.T) *TestDatabase {
	db, err := sqlite.SetupDatabase(":memory:", gormLogger.Silent)
	require.NoError(t, err, "failed to setup test database")

	td := &TestDatabase{GormDB: db, t: t}
	t.Cleanup(td.Close)
	return td
}

// Close releases the underlying connection
func (td *TestDatabase) Close() {
	sqlDB, err := td.GormDB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
