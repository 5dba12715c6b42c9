package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "BOGO_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.api_token", typ: kString, env: "BOGO_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "store.base_url", typ: kString, env: "BOGO_STORE_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Store.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Store.BaseURL },
	},
	{
		key: "store.api_key", typ: kString, env: "BOGO_STORE_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Store.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Store.APIKey },
	},
	{
		key: "store.database_id", typ: kString, env: "BOGO_STORE_DATABASE_ID",
		apply:   func(cfg *Config, v any) { cfg.Store.DatabaseID = v.(string) },
		extract: func(cfg Config) any { return cfg.Store.DatabaseID },
	},
	{
		key: "store.version", typ: kString, env: "BOGO_STORE_VERSION",
		apply:   func(cfg *Config, v any) { cfg.Store.Version = v.(string) },
		extract: func(cfg Config) any { return cfg.Store.Version },
	},
	{
		key: "storage.data_dir", typ: kString, env: "BOGO_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "BOGO_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
