package game

import (
	"context"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Session is the latest in-progress state of one (user, level) attempt
type Session struct {
	Key       shared.SessionKey
	State     GameState
	Version   int
	UpdatedAt time.Time
}

// Performance is a completed level attempt
type Performance struct {
	ID          string
	Result      GameResult
	CompletedAt time.Time
}

// SessionRepository persists in-progress sessions
type SessionRepository interface {
	// FindByKey returns a NotFoundError when no session exists
	FindByKey(ctx context.Context, key shared.SessionKey) (*Session, error)

	// Save upserts the session keyed by (user, level) and bumps its version
	Save(ctx context.Context, session *Session) error

	Delete(ctx context.Context, key shared.SessionKey) error
}

// PerformanceRepository persists completed attempts
type PerformanceRepository interface {
	Add(ctx context.Context, performance *Performance) error
	FindByUser(ctx context.Context, userID shared.UserID) ([]*Performance, error)
}
