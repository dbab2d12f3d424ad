// Package openai implements the memory.Embedder interface against any
// OpenAI-compatible embeddings endpoint.
package openai

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config holds embedder configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	MaxRetries int
}

// DefaultConfig returns the default embedder configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.openai.com/v1",
		Model:      "text-embedding-3-small",
		Dimensions: 768,
		MaxRetries: 3,
	}
}

// Embedder generates embeddings via an OpenAI-compatible API.
type Embedder struct {
	client *openai.Client
	config *Config
}

// New creates an Embedder. A nil config selects DefaultConfig.
func New(cfg *Config) *Embedder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 768
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Embed generates an embedding for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	var result []float32
	err := e.doWithRetry(ctx, func() error {
		req := openai.EmbeddingRequest{
			Input:      []string{text},
			Model:      openai.EmbeddingModel(e.config.Model),
			Dimensions: e.config.Dimensions,
		}

		resp, err := e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		result = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}

	if len(result) != e.config.Dimensions {
		log.Printf("[EMBEDDER] dimension mismatch: got %d, expected %d", len(result), e.config.Dimensions)
	}

	return result, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.config.Dimensions
}

// doWithRetry executes fn with exponential backoff.
func (e *Embedder) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < e.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < e.config.MaxRetries-1 {
				wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				log.Printf("[EMBEDDER] request failed (attempt %d), retrying in %s: %v", attempt+1, wait, err)
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
