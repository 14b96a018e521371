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
	kBool
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
		key: "server.port", typ: kInt, env: "RATEFLIX_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "provider.api_key", typ: kString, env: "RATEFLIX_PROVIDER_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Provider.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.APIKey },
	},
	{
		key: "provider.base_url", typ: kString, env: "RATEFLIX_PROVIDER_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Provider.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.BaseURL },
	},
	{
		key: "provider.model", typ: kString, env: "RATEFLIX_PROVIDER_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Provider.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.Model },
	},
	{
		key: "provider.timeout", typ: kString, env: "RATEFLIX_PROVIDER_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Provider.Timeout = v.(string) },
		extract: func(cfg Config) any { return cfg.Provider.Timeout },
	},
	{
		key: "provider.force_fallback", typ: kBool, env: "RATEFLIX_PROVIDER_FORCE_FALLBACK",
		apply:   func(cfg *Config, v any) { cfg.Provider.ForceFallback = v.(bool) },
		extract: func(cfg Config) any { return cfg.Provider.ForceFallback },
	},
	{
		key: "assistant.max_history", typ: kInt, env: "RATEFLIX_ASSISTANT_MAX_HISTORY",
		apply:   func(cfg *Config, v any) { cfg.Assistant.MaxHistory = v.(int) },
		extract: func(cfg Config) any { return cfg.Assistant.MaxHistory },
	},
	{
		key: "assistant.max_content_chars", typ: kInt, env: "RATEFLIX_ASSISTANT_MAX_CONTENT_CHARS",
		apply:   func(cfg *Config, v any) { cfg.Assistant.MaxContentChars = v.(int) },
		extract: func(cfg Config) any { return cfg.Assistant.MaxContentChars },
	},
	{
		key: "assistant.max_context_titles", typ: kInt, env: "RATEFLIX_ASSISTANT_MAX_CONTEXT_TITLES",
		apply:   func(cfg *Config, v any) { cfg.Assistant.MaxContextTitles = v.(int) },
		extract: func(cfg Config) any { return cfg.Assistant.MaxContextTitles },
	},
	{
		key: "assistant.version", typ: kString, env: "RATEFLIX_ASSISTANT_VERSION",
		apply:   func(cfg *Config, v any) { cfg.Assistant.Version = v.(string) },
		extract: func(cfg Config) any { return cfg.Assistant.Version },
	},
	{
		key: "storage.data_dir", typ: kString, env: "RATEFLIX_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "RATEFLIX_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "api.token", typ: kString, env: "RATEFLIX_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.API.Token = v.(string) },
		extract: func(cfg Config) any { return cfg.API.Token },
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
		case kBool:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if bv, err := strconv.ParseBool(v); err == nil {
					s.apply(cfg, bv)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
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
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
