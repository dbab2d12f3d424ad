// Package app wires configuration into a runnable pipeline engine.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/autowhat/attendance-agent/config"
	"github.com/autowhat/attendance-agent/engine"
	"github.com/autowhat/attendance-agent/escalate"
	"github.com/autowhat/attendance-agent/escalate/wsnotify"
	"github.com/autowhat/attendance-agent/llm"
	"github.com/autowhat/attendance-agent/memory"
	openaiembed "github.com/autowhat/attendance-agent/memory/embedder/openai"
	chromemstore "github.com/autowhat/attendance-agent/memory/store/chromem"
	pgvectorstore "github.com/autowhat/attendance-agent/memory/store/pgvector"
	"github.com/autowhat/attendance-agent/policy"
)

// App bundles the built engine with everything that needs teardown.
type App struct {
	Engine *engine.Engine

	closers []func() error
}

// Close releases all held resources in reverse construction order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[APP] close: %v", err)
		}
	}
}

// Build constructs the engine from configuration. The returned App owns the
// store, cache, and notifier connections; call Close on shutdown.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	embedder := openaiembed.New(&openaiembed.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})

	manager := memory.NewManager(store, embedder, &memory.Config{TopK: cfg.Memory.TopK})
	a.closers = append(a.closers, manager.Close)

	generator, err := buildGenerator(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	pol := policy.New(generator, policy.WithErrorLog(policy.NewErrorLog(cfg.ErrorLog)))

	notifier, err := buildNotifier(a, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Engine = engine.NewEngine(pol,
		engine.WithMemory(manager),
		engine.WithDispatcher(escalate.NewDispatcher(notifier)),
	)
	return a, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (memory.Store, error) {
	switch cfg.Memory.Driver {
	case "", "chromem":
		return chromemstore.New()
	case "pgvector":
		if cfg.Memory.DSN == "" {
			return nil, fmt.Errorf("memory driver pgvector requires a DSN")
		}
		return pgvectorstore.Open(ctx, cfg.Memory.DSN, cfg.Embedding.Dimensions)
	default:
		return nil, fmt.Errorf("unknown memory driver %q", cfg.Memory.Driver)
	}
}

func buildGenerator(cfg *config.Config) (llm.Generator, error) {
	switch cfg.Model.Provider {
	case "", "anthropic":
		return llm.NewAnthropic(llm.AnthropicConfig{
			APIKey:    cfg.Model.APIKey,
			Model:     cfg.Model.Name,
			MaxTokens: cfg.Model.MaxTokens,
		}), nil
	case "openai":
		return llm.NewOpenAI(llm.OpenAIConfig{
			BaseURL: cfg.Model.BaseURL,
			APIKey:  cfg.Model.APIKey,
			Model:   cfg.Model.Name,
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}

func buildNotifier(a *App, cfg *config.Config) (escalate.Notifier, error) {
	switch cfg.Notify.Channel {
	case "", "console":
		return escalate.Console{}, nil
	case "websocket":
		if cfg.Notify.URL == "" {
			return nil, fmt.Errorf("notify channel websocket requires a URL")
		}
		n, err := wsnotify.Dial(cfg.Notify.URL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, n.Close)
		return n, nil
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.Notify.Channel)
	}
}
