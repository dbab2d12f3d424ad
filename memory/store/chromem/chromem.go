// Package chromem implements the memory.Store interface on chromem-go,
// a pure Go embedded vector database. Each employee gets a dedicated
// collection, so isolation holds at the storage layer and not just in
// query filters.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/autowhat/attendance-agent/memory"
)

// Store is an embedded vector store for excuse records.
type Store struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
	mu          sync.RWMutex
}

// New creates an in-memory chromem store.
func New() (*Store, error) {
	return &Store{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
	}, nil
}

// getOrCreateCollection returns the collection owned by one employee.
func (s *Store) getOrCreateCollection(employeeID string) (*chromem.Collection, error) {
	s.mu.RLock()
	col, exists := s.collections[employeeID]
	s.mu.RUnlock()
	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if col, exists := s.collections[employeeID]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		fmt.Sprintf("employee_%s", employeeID),
		nil, // no collection metadata
		nil, // embeddings are provided, default cosine distance
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.collections[employeeID] = col
	return col, nil
}

// Upsert writes a record into its employee's collection.
func (s *Store) Upsert(ctx context.Context, rec *memory.Record) error {
	col, err := s.getOrCreateCollection(rec.EmployeeID)
	if err != nil {
		return err
	}

	log.Printf("[CHROMEM] storing record id=%s employee=%s", rec.ID, rec.EmployeeID)

	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Embedding: rec.Embedding,
		Metadata: map[string]string{
			"employee_id": rec.EmployeeID,
			"created_at":  rec.CreatedAt.Format(time.RFC3339),
		},
	}

	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query returns up to topK matches from the employee's collection, ordered
// by descending similarity. The metadata filter doubles the per-collection
// isolation.
func (s *Store) Query(ctx context.Context, employeeID string, embedding []float32, topK int) ([]memory.Match, error) {
	col, err := s.getOrCreateCollection(employeeID)
	if err != nil {
		return nil, err
	}

	where := map[string]string{"employee_id": employeeID}

	// chromem-go requires nResults <= collection size; shrink until it fits.
	var results []chromem.Result
	for limit := topK; limit >= 1; limit-- {
		results, err = col.QueryEmbedding(ctx, embedding, limit, where, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if limit == 1 {
				return nil, nil // collection is empty
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	matches := make([]memory.Match, 0, len(results))
	for _, result := range results {
		matches = append(matches, memory.Match{
			Text:     result.Content,
			Score:    float64(result.Similarity),
			Metadata: result.Metadata,
		})
	}

	log.Printf("[CHROMEM] returning %d matches for employee %s", len(matches), employeeID)
	return matches, nil
}

// Close releases resources. chromem keeps everything in memory.
func (s *Store) Close() error {
	return nil
}

func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
