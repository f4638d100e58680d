package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GormPerformanceRepository implements game.PerformanceRepository using GORM
type GormPerformanceRepository struct {
	db *gorm.DB
}

// NewGormPerformanceRepository creates a new GORM performance repository
func NewGormPerformanceRepository(db *gorm.DB) *GormPerformanceRepository {
	return &GormPerformanceRepository{db: db}
}

// Add records a completed attempt
func (r *GormPerformanceRepository) Add(ctx context.Context, performance *game.Performance) error {
	resultJSON, err := json.Marshal(performance.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	model := &PerformanceModel{
		ID:               performance.ID,
		UserID:           performance.Result.UserID.Value(),
		LevelID:          performance.Result.LevelID.Int(),
		Score:            performance.Result.Score,
		MaxScore:         performance.Result.MaxScore,
		CumulativeProfit: performance.Result.CumulativeProfit,
		DaysPlayed:       performance.Result.DaysPlayed,
		Result:           string(resultJSON),
		CompletedAt:      performance.CompletedAt,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create performance: %w", err)
	}
	return nil
}

// FindByUser returns a user's attempts, newest first
func (r *GormPerformanceRepository) FindByUser(ctx context.Context, userID shared.UserID) ([]*game.Performance, error) {
	var models []PerformanceModel
	result := conn(ctx, r.db).
		Where("user_id = ?", userID.Value()).
		Order("completed_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find performances: %w", result.Error)
	}

	performances := make([]*game.Performance, len(models))
	for i, model := range models {
		var gameResult game.GameResult
		if err := json.Unmarshal([]byte(model.Result), &gameResult); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game result %s: %w", model.ID, err)
		}
		performances[i] = &game.Performance{
			ID:          model.ID,
			Result:      gameResult,
			CompletedAt: model.CompletedAt,
		}
	}

	return performances, nil
}
