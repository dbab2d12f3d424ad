// Package memory provides per-employee semantic memory over past excuses.
//
// Every interaction worth remembering is stored as a Record: free text plus
// an embedding, owned by exactly one employee. Retrieval is vector similarity
// search strictly scoped to the owning employee; no record is ever visible
// across employees, even for near-identical embeddings.
//
// Architecture:
//   - Store: vector storage backend (chromem-go embedded, pgvector for production)
//   - Embedder: text-to-vector conversion (OpenAI-compatible API, mock for tests)
//   - Manager: orchestrates save and search, caches embeddings
//
// Memory is append-only: records are never updated or deleted.
package memory
