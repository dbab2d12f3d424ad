// Package pgvector implements the memory.Store interface on PostgreSQL with
// the pgvector extension. This is the production backend; chromem is for
// local development and tests.
package pgvector

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/autowhat/attendance-agent/memory"
)

// Store persists excuse records in PostgreSQL.
type Store struct {
	db         *sql.DB
	dimensions int
}

// Open connects to PostgreSQL and ensures the schema exists.
func Open(ctx context.Context, dsn string, dimensions int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db, dimensions: dimensions}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS excuse_memory (
			id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_ts TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.dimensions),
		`CREATE INDEX IF NOT EXISTS idx_excuse_memory_employee ON excuse_memory (employee_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert writes a record. Records are append-only; the ON CONFLICT clause
// only guards against duplicate IDs from retried callers.
func (s *Store) Upsert(ctx context.Context, rec *memory.Record) error {
	stmt := `
		INSERT INTO excuse_memory (id, employee_id, content, embedding, created_ts)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, stmt,
		rec.ID,
		rec.EmployeeID,
		rec.Text,
		pgv.NewVector(rec.Embedding),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert excuse memory: %w", err)
	}

	log.Printf("[PGVECTOR] stored record id=%s employee=%s", rec.ID, rec.EmployeeID)
	return nil
}

// Query performs cosine similarity search scoped to one employee.
// The <=> operator computes cosine distance, so 1 - distance is the score
// and ordering by distance ascending returns the most similar first.
func (s *Store) Query(ctx context.Context, employeeID string, embedding []float32, topK int) ([]memory.Match, error) {
	if topK <= 0 {
		topK = 5
	}

	query := `
		SELECT content, 1 - (embedding <=> $1) AS score, created_ts
		FROM excuse_memory
		WHERE employee_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`

	vector := pgv.NewVector(embedding)
	rows, err := s.db.QueryContext(ctx, query, vector, employeeID, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var matches []memory.Match
	for rows.Next() {
		var (
			content   string
			score     float64
			createdTs sql.NullTime
		)
		if err := rows.Scan(&content, &score, &createdTs); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		meta := map[string]string{"employee_id": employeeID}
		if createdTs.Valid {
			meta["created_at"] = createdTs.Time.UTC().Format(time.RFC3339)
		}
		matches = append(matches, memory.Match{
			Text:     content,
			Score:    score,
			Metadata: meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
