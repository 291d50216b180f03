package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/staff-directory/internal/config"
	"github.com/jrsteele09/staff-directory/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryConfig struct {
	dsn string
}

func (m memoryConfig) GetDBDriver() string { return config.DriverSQLite }
func (m memoryConfig) GetDBDSN() string    { return m.dsn }

// Open opens a private in-memory SQLite database migrated with the given models.
// The database is closed when the test ends.
func Open(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(memoryConfig{dsn: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models...))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
