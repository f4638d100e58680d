package helpers

import (
	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/persistence"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB           *gorm.DB
	Sessions     *persistence.GormSessionRepository
	Performances *persistence.GormPerformanceRepository
	Transactions *persistence.GormTransactionRepository
	UnitOfWork   *persistence.GormUnitOfWork
}

// NewTestRepositories creates all real repository instances over db
func NewTestRepositories(db *gorm.DB) *TestRepositories {
	return &TestRepositories{
		DB:           db,
		Sessions:     persistence.NewGormSessionRepository(db),
		Performances: persistence.NewGormPerformanceRepository(db),
		Transactions: persistence.NewGormTransactionRepository(db),
		UnitOfWork:   persistence.NewGormUnitOfWork(db),
	}
}
