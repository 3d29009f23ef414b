// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play PlayConfig `toml:"play"`
	Log  LogConfig  `toml:"log"`
}

// PlayConfig maps play-related settings.
type PlayConfig struct {
	Lang       *string   `toml:"lang"`
	Categories *[]string `toml:"categories"`
	Rounds     *int      `toml:"rounds"`
	Players    *[]string `toml:"players"`
	Shuffle    *bool     `toml:"shuffle"`
	Seed       *string   `toml:"seed"`
	CatalogDir *string   `toml:"catalog-dir"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
