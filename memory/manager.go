package memory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// Config holds Manager configuration.
type Config struct {
	// TopK is the maximum number of matches returned by Search.
	// Default: 5.
	TopK int

	// CacheMaxBytes bounds the embedding cache. Default: 32 MiB.
	// Set negative to disable caching.
	CacheMaxBytes int64
}

// DefaultConfig returns the defaults used by the pipeline.
var DefaultConfig = &Config{
	TopK:          5,
	CacheMaxBytes: 32 << 20,
}

// Manager wraps a Store and an Embedder with the two operations the pipeline
// needs: Save and Search. One configured Manager is reused across pipeline
// invocations; it holds no per-conversation state.
type Manager struct {
	store    Store
	embedder Embedder
	config   *Config
	cache    *ristretto.Cache
}

// NewManager creates a Manager. A nil config selects DefaultConfig.
func NewManager(store Store, embedder Embedder, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	if config.TopK <= 0 {
		config.TopK = DefaultConfig.TopK
	}

	m := &Manager{
		store:    store,
		embedder: embedder,
		config:   config,
	}

	if config.CacheMaxBytes >= 0 {
		maxCost := config.CacheMaxBytes
		if maxCost == 0 {
			maxCost = DefaultConfig.CacheMaxBytes
		}
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 10_000,
			MaxCost:     maxCost,
			BufferItems: 64,
		})
		if err != nil {
			// Cache is an optimization; run without it.
			log.Printf("[MEMORY] embedding cache disabled: %v", err)
		} else {
			m.cache = cache
		}
	}

	return m
}

// Save embeds text and writes a new Record owned by employeeID.
// Nothing is retried; failures are reported to the caller.
func (m *Manager) Save(ctx context.Context, employeeID, text string) error {
	if text == "" {
		return ErrEmptyText
	}

	embedding, err := m.embed(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	rec := &Record{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Text:       text,
		Embedding:  embedding,
		CreatedAt:  time.Now().UTC(),
	}

	if err := m.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	log.Printf("[MEMORY] saved record %s for employee %s", rec.ID, employeeID)
	return nil
}

// Search embeds text and returns up to TopK matches for employeeID, ordered
// by descending similarity. The returned slice is always valid: on failure it
// is empty and the error describes why, so callers can continue degraded.
func (m *Manager) Search(ctx context.Context, employeeID, text string) ([]Match, error) {
	embedding, err := m.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	matches, err := m.store.Query(ctx, employeeID, embedding, m.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreQuery, err)
	}

	log.Printf("[MEMORY] found %d matches for employee %s", len(matches), employeeID)
	return matches, nil
}

// Close releases the store and cache.
func (m *Manager) Close() error {
	if m.cache != nil {
		m.cache.Close()
	}
	return m.store.Close()
}

// embed returns the embedding for text, serving repeats from cache.
func (m *Manager) embed(ctx context.Context, text string) ([]float32, error) {
	if m.cache != nil {
		if v, ok := m.cache.Get(text); ok {
			if vec, ok := v.([]float32); ok {
				return vec, nil
			}
		}
	}

	vec, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cache.Set(text, vec, int64(len(vec)*4))
	}
	return vec, nil
}
