package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything lthgame and lthgame-server read at startup
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Game     GameConfig     `mapstructure:"game"`
}

// envKeys lists every setting so LTH_* variables apply even when no config file names them
var envKeys = []string{
	"database.type", "database.url", "database.host", "database.port", "database.user",
	"database.password", "database.name", "database.sslmode", "database.path", "database.log_queries",
	"database.pool.max_open", "database.pool.max_idle", "database.pool.max_lifetime",
	"server.address", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"server.pid_file", "server.rate_limit.requests", "server.rate_limit.burst",
	"logging.level", "logging.format", "logging.output", "logging.file_path",
	"metrics.enabled", "metrics.path",
	"game.levels_dir",
}

// LoadConfig resolves settings from, in decreasing priority:
// LTH_* environment variables (a .env file is read first), DATABASE_URL,
// the config file, and SetDefaults.
// An empty configPath searches for config.yaml in ., ./configs and /etc/lthgame.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range []string{".", "./configs", "/etc/lthgame"} {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("LTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && os.Getenv("LTH_DATABASE_URL") == "" {
		v.Set("database.url", dbURL)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigOrDefault falls back to the defaults when loading fails
func LoadConfigOrDefault(configPath string) *Config {
	if cfg, err := LoadConfig(configPath); err == nil {
		return cfg
	}
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}
