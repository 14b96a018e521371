// Package config loads runtime configuration from a JSON file backend with
// environment variable overrides. Secrets (the provider API key and the API
// bearer token) are env-only and never written to the backend.
package config

type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Assistant AssistantConfig
	Storage   StorageConfig
	Log       LogConfig
	API       APIConfig
}

type ServerConfig struct {
	Port int
}

type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout is a duration string, e.g. "20s". Parsed at wiring time.
	Timeout       string
	ForceFallback bool
}

type AssistantConfig struct {
	MaxHistory       int
	MaxContentChars  int
	MaxContextTitles int
	Version          string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

type APIConfig struct {
	Token string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4000,
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.deepseek.com/v1",
			Model:   "deepseek-chat",
			Timeout: "20s",
		},
		Assistant: AssistantConfig{
			MaxHistory:       8,
			MaxContentChars:  1600,
			MaxContextTitles: 24,
			Version:          "1.2.0",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/rateflix/config.json, then applies RATEFLIX_* environment
// overrides. A missing provider API key is not an error: the assistant runs
// in fallback mode without one.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()
	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}
