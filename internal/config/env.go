package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment.
type EnvConfig struct {
	CatalogDir string `env:"PERFIL_CATALOG_DIR"`
	DBPath     string `env:"PERFIL_DB_PATH"`
	LogLevel   string `env:"PERFIL_LOG_LEVEL"`
}

// LoadEnv parses PERFIL_* environment variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DBPathOrDefault returns the env override or the default database path.
func (c EnvConfig) DBPathOrDefault() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}
