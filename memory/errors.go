package memory

import "errors"

var (
	// ErrEmptyText is returned when saving empty text.
	ErrEmptyText = errors.New("memory: empty text")

	// ErrEmbedding marks a failure to generate an embedding.
	ErrEmbedding = errors.New("memory: embedding failed")

	// ErrStoreWrite marks a failure to persist a record.
	ErrStoreWrite = errors.New("memory: store write failed")

	// ErrStoreQuery marks a failure to query the store.
	ErrStoreQuery = errors.New("memory: store query failed")
)
