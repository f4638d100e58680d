package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GormSessionRepository implements game.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByKey loads the session for a (user, level) pair
func (r *GormSessionRepository) FindByKey(ctx context.Context, key shared.SessionKey) (*game.Session, error) {
	var model GameSessionModel
	result := conn(ctx, r.db).
		Where("user_id = ? AND level_id = ?", key.UserID.Value(), key.LevelID.Int()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("session", key.String())
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}

	return r.modelToSession(&model)
}

// Save upserts the session and bumps its version.
// session.Version and session.UpdatedAt are refreshed from the stored row.
func (r *GormSessionRepository) Save(ctx context.Context, session *game.Session) error {
	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	now := time.Now().UTC()
	model := &GameSessionModel{
		UserID:    session.Key.UserID.Value(),
		LevelID:   session.Key.LevelID.Int(),
		Day:       session.State.Day,
		GameOver:  session.State.GameOver,
		State:     string(stateJSON),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "level_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"day":        model.Day,
				"game_over":  model.GameOver,
				"state":      model.State,
				"updated_at": model.UpdatedAt,
				"version":    gorm.Expr("game_sessions.version + 1"),
			}),
		}).Create(model)
		if result.Error != nil {
			return fmt.Errorf("failed to save session: %w", result.Error)
		}

		var stored GameSessionModel
		if err := tx.Select("version", "updated_at").
			Where("user_id = ? AND level_id = ?", model.UserID, model.LevelID).
			First(&stored).Error; err != nil {
			return fmt.Errorf("failed to reload session version: %w", err)
		}

		session.Version = stored.Version
		session.UpdatedAt = stored.UpdatedAt
		return nil
	})
}

// Delete removes the session; deleting a missing session is not an error
func (r *GormSessionRepository) Delete(ctx context.Context, key shared.SessionKey) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND level_id = ?", key.UserID.Value(), key.LevelID.Int()).
		Delete(&GameSessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

func (r *GormSessionRepository) modelToSession(model *GameSessionModel) (*game.Session, error) {
	userID, err := shared.NewUserID(model.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %w", err)
	}
	levelID, err := shared.NewLevelID(model.LevelID)
	if err != nil {
		return nil, fmt.Errorf("invalid level ID in database: %w", err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(model.State), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return &game.Session{
		Key:       shared.SessionKey{UserID: userID, LevelID: levelID},
		State:     state,
		Version:   model.Version,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
