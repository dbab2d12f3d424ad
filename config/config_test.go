package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Model.Provider != "anthropic" {
		t.Errorf("model provider = %q, want anthropic", cfg.Model.Provider)
	}
	if cfg.Model.MaxTokens != 1024 {
		t.Errorf("max tokens = %d, want 1024", cfg.Model.MaxTokens)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("embedding dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
	if cfg.Memory.Driver != "chromem" {
		t.Errorf("memory driver = %q, want chromem", cfg.Memory.Driver)
	}
	if cfg.Memory.TopK != 5 {
		t.Errorf("top_k = %d, want 5", cfg.Memory.TopK)
	}
	if cfg.Notify.Channel != "console" {
		t.Errorf("notify channel = %q, want console", cfg.Notify.Channel)
	}
	if cfg.ErrorLog != "llm_error.txt" {
		t.Errorf("error log = %q, want llm_error.txt", cfg.ErrorLog)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATTEND_SERVER_PORT", "9090")
	t.Setenv("ATTEND_MODEL_PROVIDER", "openai")
	t.Setenv("ATTEND_MODEL_API_KEY", "sk-test")
	t.Setenv("ATTEND_MEMORY_TOP_K", "3")
	t.Setenv("ATTEND_ERRORLOG", "/tmp/failures.txt")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("model provider = %q, want openai", cfg.Model.Provider)
	}
	if cfg.Model.APIKey != "sk-test" {
		t.Errorf("api key = %q, want sk-test", cfg.Model.APIKey)
	}
	if cfg.Memory.TopK != 3 {
		t.Errorf("top_k = %d, want 3", cfg.Memory.TopK)
	}
	if cfg.ErrorLog != "/tmp/failures.txt" {
		t.Errorf("error log = %q", cfg.ErrorLog)
	}
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `server:
  port: 7070
memory:
  driver: pgvector
  dsn: postgres://localhost/attendance
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ATTEND_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Environment wins over the file.
	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	// File wins over defaults.
	if cfg.Memory.Driver != "pgvector" {
		t.Errorf("memory driver = %q, want pgvector", cfg.Memory.Driver)
	}
	if cfg.Memory.DSN != "postgres://localhost/attendance" {
		t.Errorf("dsn = %q", cfg.Memory.DSN)
	}
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want default 8080", cfg.Server.Port)
	}
}
