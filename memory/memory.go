package memory

import (
	"context"
	"time"
)

// Record is a persisted memory: one past excuse, owned by one employee.
type Record struct {
	ID         string
	EmployeeID string
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
}

// Match is one retrieval result, ordered by descending similarity.
// Score is cosine similarity; practically [0,1] for normalized text embeddings.
type Match struct {
	Text     string
	Score    float64
	Metadata map[string]string
}

// Store is the vector storage backend interface.
// Implementations: chromem.Store (embedded), pgvector.Store (production).
type Store interface {
	// Upsert writes a record. The record must have its embedding set.
	Upsert(ctx context.Context, rec *Record) error

	// Query returns up to topK matches for the employee, ordered by
	// descending similarity. The employee filter is an absolute isolation
	// invariant: implementations must never return another employee's
	// records.
	Query(ctx context.Context, employeeID string, embedding []float32, topK int) ([]Match, error)

	// Close releases resources.
	Close() error
}

// Embedder converts text to vector embeddings.
// Implementations: openai.Embedder (API-based), mock.Embedder (tests).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
