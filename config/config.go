// Package config loads the agent configuration from an optional YAML file
// and ATTEND_-prefixed environment variables. Environment values override
// the file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full agent configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Model     ModelConfig     `koanf:"model"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Memory    MemoryConfig    `koanf:"memory"`
	Notify    NotifyConfig    `koanf:"notify"`
	ErrorLog  string          `koanf:"errorlog"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Port int `koanf:"port"`
}

// ModelConfig configures the text-generation service.
type ModelConfig struct {
	// Provider selects the generator: "anthropic" or "openai".
	Provider  string `koanf:"provider"`
	APIKey    string `koanf:"api_key"`
	Name      string `koanf:"name"`
	BaseURL   string `koanf:"base_url"`
	MaxTokens int64  `koanf:"max_tokens"`
}

// EmbeddingConfig configures the embedding service.
type EmbeddingConfig struct {
	BaseURL    string `koanf:"base_url"`
	APIKey     string `koanf:"api_key"`
	Model      string `koanf:"model"`
	Dimensions int    `koanf:"dimensions"`
}

// MemoryConfig configures the vector store.
type MemoryConfig struct {
	// Driver selects the store: "chromem" (embedded) or "pgvector".
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	TopK   int    `koanf:"top_k"`
}

// NotifyConfig configures the notification channel.
type NotifyConfig struct {
	// Channel selects the notifier: "console" or "websocket".
	Channel string `koanf:"channel"`
	URL     string `koanf:"url"`
}

// Load reads configuration. path may be empty or point to a YAML file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	// Only the first underscore separates the section from the key, so
	// ATTEND_MODEL_API_KEY maps to model.api_key.
	if err := k.Load(env.Provider("ATTEND_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "ATTEND_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"server.port":          8080,
		"model.provider":       "anthropic",
		"model.max_tokens":     1024,
		"embedding.dimensions": 768,
		"memory.driver":        "chromem",
		"memory.top_k":         5,
		"notify.channel":       "console",
		"errorlog":             "llm_error.txt",
	}
	for key, val := range defaults {
		if !k.Exists(key) {
			k.Set(key, val)
		}
	}
}
