package memory

import (
	"context"
	"errors"
	"testing"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func (f *fakeEmbedder) Dimensions() int { return 3 }

type fakeStore struct {
	records   []*Record
	matches   []Match
	upsertErr error
	queryErr  error
}

func (f *fakeStore) Upsert(_ context.Context, rec *Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeStore) Query(_ context.Context, _ string, _ []float32, _ int) ([]Match, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

func (f *fakeStore) Close() error { return nil }

// newTestManager disables the cache so embedder call counts are exact.
func newTestManager(store Store, embedder Embedder) *Manager {
	return NewManager(store, embedder, &Config{TopK: 5, CacheMaxBytes: -1})
}

func TestSaveRejectsEmptyText(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeEmbedder{})

	if err := m.Save(context.Background(), "emp-1", ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Save(\"\") = %v, want ErrEmptyText", err)
	}
}

func TestSaveWritesOwnedRecord(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store, &fakeEmbedder{})

	if err := m.Save(context.Background(), "emp-1", "stuck in traffic"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.EmployeeID != "emp-1" {
		t.Errorf("record employee = %q, want emp-1", rec.EmployeeID)
	}
	if rec.Text != "stuck in traffic" {
		t.Errorf("record text = %q", rec.Text)
	}
	if rec.ID == "" {
		t.Error("record ID not assigned")
	}
	if len(rec.Embedding) != 3 {
		t.Errorf("embedding length = %d, want 3", len(rec.Embedding))
	}
	if rec.CreatedAt.IsZero() {
		t.Error("record timestamp not set")
	}
}

func TestSaveWrapsStageErrors(t *testing.T) {
	embedFailed := errors.New("embedding service down")
	m := newTestManager(&fakeStore{}, &fakeEmbedder{err: embedFailed})

	err := m.Save(context.Background(), "emp-1", "overslept")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("Save with failing embedder = %v, want ErrEmbedding", err)
	}
	if !errors.Is(err, embedFailed) {
		t.Errorf("cause not preserved: %v", err)
	}

	writeFailed := errors.New("disk full")
	m = newTestManager(&fakeStore{upsertErr: writeFailed}, &fakeEmbedder{})

	err = m.Save(context.Background(), "emp-1", "overslept")
	if !errors.Is(err, ErrStoreWrite) {
		t.Errorf("Save with failing store = %v, want ErrStoreWrite", err)
	}
}

func TestSearchWrapsStageErrors(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeEmbedder{err: errors.New("down")})

	matches, err := m.Search(context.Background(), "emp-1", "overslept")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("Search with failing embedder = %v, want ErrEmbedding", err)
	}
	if len(matches) != 0 {
		t.Errorf("Search returned %d matches alongside error", len(matches))
	}

	m = newTestManager(&fakeStore{queryErr: errors.New("timeout")}, &fakeEmbedder{})
	if _, err := m.Search(context.Background(), "emp-1", "overslept"); !errors.Is(err, ErrStoreQuery) {
		t.Errorf("Search with failing store = %v, want ErrStoreQuery", err)
	}
}

func TestSearchReturnsStoreMatches(t *testing.T) {
	store := &fakeStore{matches: []Match{
		{Text: "stuck in traffic", Score: 0.91},
		{Text: "bus broke down", Score: 0.74},
	}}
	m := newTestManager(store, &fakeEmbedder{})

	matches, err := m.Search(context.Background(), "emp-1", "traffic again")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Score < matches[1].Score {
		t.Error("matches not ordered by descending similarity")
	}
}
