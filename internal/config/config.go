// Package config loads tada settings.
//
// Sources, lowest priority first:
//  1. Defaults
//  2. User config file (~/.tada/config.toml)
//  3. Project config file (tada.toml in the current directory)
//  4. An explicit file passed with -config
//  5. Environment variables (TADA_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultStorageKey = "tada.projects"
	DefaultTheme      = "classic"
	DefaultLogLevel   = "warn"

	userDirName     = ".tada"
	userConfigName  = "config.toml"
	projectFileName = "tada.toml"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `toml:"backend" env:"TADA_STORAGE"`
	// Path is the data directory (file) or database file (sqlite).
	Path string `toml:"path" env:"TADA_DATA_PATH"`
	Key  string `toml:"key" env:"TADA_STORAGE_KEY"`
}

type LogConfig struct {
	Level      string `toml:"level" env:"TADA_LOG_LEVEL"`
	Format     string `toml:"format" env:"TADA_LOG_FORMAT"`
	Timestamps bool   `toml:"timestamps" env:"TADA_LOG_TIMESTAMPS"`
}

type UIConfig struct {
	Theme string `toml:"theme" env:"TADA_THEME"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := userDir()
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    dir,
			Key:     DefaultStorageKey,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: "text"},
		UI:  UIConfig{Theme: DefaultTheme},
	}
}

// Load layers every config source on top of the defaults. explicit may be empty.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if p := filepath.Join(userDir(), userConfigName); fileExists(p) {
		if err := decodeFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if fileExists(projectFileName) {
		if err := decodeFile(cfg, projectFileName); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFileName, err)
		}
	}
	if explicit != "" {
		if err := decodeFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalize validates the backend and resolves the storage path.
func (c *Config) finalize() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = DefaultStorageKey
	}
	c.Storage.Path = expandPath(c.Storage.Path)
	if c.Storage.Path == "" {
		c.Storage.Path = userDir()
	}
	if c.Storage.Backend == BackendSQLite && filepath.Ext(c.Storage.Path) == "" {
		c.Storage.Path = filepath.Join(c.Storage.Path, "tada.db")
	}
	return nil
}

func userDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return userDirName
	}
	return filepath.Join(home, userDirName)
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
