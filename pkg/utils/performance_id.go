package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GeneratePerformanceID creates a readable identifier for a completed attempt.
// Format: level{N}-{userId}-{8charHexUUID}
//
// Example:
//   - Input: userID="Team 7", levelID=2
//   - Output: "level2-team-7-a3f8e2b1"
func GeneratePerformanceID(userID string, levelID int) string {
	return fmt.Sprintf("level%d-%s-%s", levelID, slugify(userID), shortUUID())
}

// slugify lowercases the user id and collapses anything outside [a-z0-9] into single hyphens
func slugify(value string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

func shortUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
