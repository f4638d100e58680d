package level

import "github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"

// Catalog provides the static level definitions
type Catalog interface {
	// Get returns a NotFoundError for unknown ids
	Get(id shared.LevelID) (*Config, error)

	// List returns every level ordered by id
	List() []*Config
}
