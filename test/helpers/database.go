package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/database"
)

// NewTestDB returns a private migrated in-memory database closed at test end
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
