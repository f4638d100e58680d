package persistence

import (
	"time"
)

// GameSessionModel represents the game_sessions table.
// One row per (user, level); the full GameState is stored as JSON.
type GameSessionModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_game_sessions_user_level"`
	LevelID   int       `gorm:"column:level_id;not null;uniqueIndex:idx_game_sessions_user_level"`
	Day       int       `gorm:"column:day;not null"`
	GameOver  bool      `gorm:"column:game_over;not null;default:false"`
	State     string    `gorm:"column:state;type:text;not null"` // JSON stored as string
	Version   int       `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameSessionModel) TableName() string {
	return "game_sessions"
}

// PerformanceModel represents the performances table
type PerformanceModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	UserID           string    `gorm:"column:user_id;not null;index:idx_performances_user"`
	LevelID          int       `gorm:"column:level_id;not null;index:idx_performances_user"`
	Score            int       `gorm:"column:score;not null"`
	MaxScore         int       `gorm:"column:max_score;not null"`
	CumulativeProfit float64   `gorm:"column:cumulative_profit;not null"`
	DaysPlayed       int       `gorm:"column:days_played;not null"`
	Result           string    `gorm:"column:result;type:text;not null"` // JSON GameResult
	CompletedAt      time.Time `gorm:"column:completed_at;not null"`
}

func (PerformanceModel) TableName() string {
	return "performances"
}

// TransactionModel represents the ledger_transactions table
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id;not null;index:idx_ledger_session_day"`
	LevelID         int       `gorm:"column:level_id;not null;index:idx_ledger_session_day"`
	Day             int       `gorm:"column:day;not null;index:idx_ledger_session_day"`
	Sequence        int       `gorm:"column:sequence;not null"` // position within the day's posting
	Timestamp       time.Time `gorm:"column:timestamp;not null"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Category        string    `gorm:"column:category;not null"`
	Amount          float64   `gorm:"column:amount;not null"`
	BalanceBefore   float64   `gorm:"column:balance_before;not null"`
	BalanceAfter    float64   `gorm:"column:balance_after;not null"`
	Description     string    `gorm:"column:description;not null"`
	Metadata        string    `gorm:"column:metadata;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
}

func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// AllModels lists every model managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&GameSessionModel{},
		&PerformanceModel{},
		&TransactionModel{},
	}
}
