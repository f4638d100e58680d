package config

// GameConfig holds simulation settings
type GameConfig struct {
	// Directory of level YAML files overriding the built-in definitions.
	// Files are matched by level id; levels not present keep their built-in version.
	LevelsDir string `mapstructure:"levels_dir" validate:"omitempty,dir"`
}
