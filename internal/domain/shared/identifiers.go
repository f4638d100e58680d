package shared

import (
	"fmt"
	"strings"
)

// MaxLevelID is the highest level identifier shipped with the game.
const MaxLevelID = 3

// UserID is a value object identifying the team/user playing a level
type UserID struct {
	value string
}

// NewUserID creates a new UserID value object
func NewUserID(id string) (UserID, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return UserID{}, NewValidationError("userId", "user id cannot be empty")
	}
	return UserID{value: trimmed}, nil
}

// MustNewUserID creates a new UserID value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewUserID(id string) UserID {
	userID, err := NewUserID(id)
	if err != nil {
		panic(err)
	}
	return userID
}

func (u UserID) Value() string {
	return u.value
}

func (u UserID) String() string {
	return u.value
}

func (u UserID) IsZero() bool {
	return u.value == ""
}

// LevelID identifies one of the static level configurations (0..MaxLevelID)
type LevelID int

// NewLevelID validates a raw level number
func NewLevelID(id int) (LevelID, error) {
	if id < 0 || id > MaxLevelID {
		return 0, NewValidationError("levelId", fmt.Sprintf("level id must be between 0 and %d, got %d", MaxLevelID, id))
	}
	return LevelID(id), nil
}

func (l LevelID) Int() int {
	return int(l)
}

func (l LevelID) String() string {
	return fmt.Sprintf("%d", int(l))
}

// SessionKey identifies a (user, level) game session
type SessionKey struct {
	UserID  UserID
	LevelID LevelID
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%s/%d", k.UserID.Value(), int(k.LevelID))
}

func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

func (u *UserID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = UserID{}
		return nil
	}
	parsed, err := NewUserID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// NewSessionKey validates raw user and level identifiers
func NewSessionKey(userID string, levelID int) (SessionKey, error) {
	user, err := NewUserID(userID)
	if err != nil {
		return SessionKey{}, err
	}
	level, err := NewLevelID(levelID)
	if err != nil {
		return SessionKey{}, err
	}
	return SessionKey{UserID: user, LevelID: level}, nil
}
