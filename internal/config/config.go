// Package config loads service configuration from a JSON config file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port     int
	APIToken string // optional; empty disables bearer auth
}

// StoreConfig identifies the external record store holding reports.
type StoreConfig struct {
	BaseURL    string
	APIKey     string
	DatabaseID string
	Version    string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4700,
		},
		Store: StoreConfig{
			BaseURL: "https://api.notion.com/v1",
			Version: "2022-06-28",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "bogo-data"
		}
	}
	return filepath.Join(dir, "bogo")
}

// Load reads configuration from the JSON config file at
// $XDG_CONFIG_HOME/bogo/config.json, then applies BOGO_* environment
// overrides. It fails fast when the record-store credentials are
// missing: the service cannot do anything useful without them.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()))
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)

	if cfg.Store.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: record store API key. Set it via environment variable BOGO_STORE_API_KEY")
	}
	if cfg.Store.DatabaseID == "" {
		return Config{}, fmt.Errorf("missing required config: record store database id. Set it via environment variable BOGO_STORE_DATABASE_ID")
	}

	return cfg, nil
}
