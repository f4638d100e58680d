package config

import (
	"fmt"
	"time"
)

// DatabaseConfig describes where sessions, performances and the ledger are stored.
// Postgres is reached through URL when set, otherwise through the discrete fields.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// sqlite file, or ":memory:"
	Path string `mapstructure:"path"`

	// LogQueries turns on gorm's SQL trace
	LogQueries bool `mapstructure:"log_queries"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig applies to postgres only; sqlite always runs on one connection
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1,ltefield=MaxOpen"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the driver connection string for the configured type
func (c DatabaseConfig) DSN() string {
	switch c.Type {
	case "sqlite":
		if c.Path == "" {
			return ":memory:"
		}
		return c.Path
	default:
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
}
