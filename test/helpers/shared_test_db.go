package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/persistence"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/database"
)

// SharedTestDB backs the BDD suite; open it in TestMain
var SharedTestDB *gorm.DB

func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties every migrated table so scenarios start clean
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	models := persistence.AllModels()
	return SharedTestDB.Transaction(func(tx *gorm.DB) error {
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
				return fmt.Errorf("failed to truncate %T: %w", models[i], err)
			}
		}
		return nil
	})
}

func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
