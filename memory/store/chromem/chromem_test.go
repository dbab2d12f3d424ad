package chromem

import (
	"context"
	"testing"
	"time"

	"github.com/autowhat/attendance-agent/memory"
	"github.com/autowhat/attendance-agent/memory/embedder/mock"
)

func mustEmbed(t *testing.T, e *mock.Embedder, text string) []float32 {
	t.Helper()
	vec, err := e.Embed(context.Background(), text)
	if err != nil {
		t.Fatalf("embed %q: %v", text, err)
	}
	return vec
}

func record(t *testing.T, e *mock.Embedder, id, employeeID, text string) *memory.Record {
	t.Helper()
	return &memory.Record{
		ID:         id,
		EmployeeID: employeeID,
		Text:       text,
		Embedding:  mustEmbed(t, e, text),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestQueryIsolatesEmployees(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	embedder := mock.New(64)

	if err := store.Upsert(ctx, record(t, embedder, "r1", "emp-a", "stuck in traffic")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	query := mustEmbed(t, embedder, "stuck in traffic")

	// The owner sees their record with similarity ~1.0.
	matches, err := store.Query(ctx, "emp-a", query, 5)
	if err != nil {
		t.Fatalf("Query emp-a: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("emp-a got %d matches, want 1", len(matches))
	}
	if matches[0].Score < 0.99 {
		t.Errorf("identical text scored %.3f, want ~1.0", matches[0].Score)
	}

	// A different employee querying the identical text sees nothing.
	matches, err = store.Query(ctx, "emp-b", query, 5)
	if err != nil {
		t.Fatalf("Query emp-b: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("emp-b got %d matches, want 0", len(matches))
	}
}

func TestQueryShrinksLimitToCollectionSize(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	embedder := mock.New(64)

	// Two documents, topK of five: the query must still succeed.
	if err := store.Upsert(ctx, record(t, embedder, "r1", "emp-a", "overslept")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, record(t, embedder, "r2", "emp-a", "bus broke down")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	matches, err := store.Query(ctx, "emp-a", mustEmbed(t, embedder, "overslept"), 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	embedder := mock.New(64)
	matches, err := store.Query(context.Background(), "emp-new", mustEmbed(t, embedder, "hello"), 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("empty collection returned %d matches", len(matches))
	}
}

func TestUpsertCarriesMetadata(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	embedder := mock.New(64)

	if err := store.Upsert(ctx, record(t, embedder, "r1", "emp-a", "flat tire")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	matches, err := store.Query(ctx, "emp-a", mustEmbed(t, embedder, "flat tire"), 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Metadata["employee_id"] != "emp-a" {
		t.Errorf("metadata employee_id = %q", matches[0].Metadata["employee_id"])
	}
	if matches[0].Metadata["created_at"] == "" {
		t.Error("metadata created_at missing")
	}
}
