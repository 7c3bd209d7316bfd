// Package knowledge provides the disk-persisted vector store for resume
// passages. It wraps chromem-go, an embedded vector database whose
// collections survive process restarts, so the index built on the first
// question is reused on every later one.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// CollectionName is the single collection holding resume and FAQ passages.
const CollectionName = "resume_rag"

// Store manages passage documents with vector search capabilities.
// Embeddings are produced by the configured EmbeddingFunc and persisted
// under the store's directory.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	mu         sync.RWMutex // guards collection across Reset
	db         *chromem.DB
	collection *chromem.Collection
	embed      chromem.EmbeddingFunc
	logger     *slog.Logger
}

// Open opens (or creates) a persistent store in dir.
//
// Parameters:
//   - dir: directory for the persisted index
//   - embed: embedding function (see NewEmbeddingFunc)
//   - logger: logger for debugging (nil = slog.Default)
func Open(dir string, embed chromem.EmbeddingFunc, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", dir, err)
	}

	collection, err := db.GetOrCreateCollection(CollectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", CollectionName, err)
	}

	return &Store{
		db:         db,
		collection: collection,
		embed:      embed,
		logger:     logger,
	}, nil
}

// Add embeds and persists the given documents. Documents with an ID already
// present in the collection are overwritten.
func (s *Store) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	converted := make([]chromem.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document with empty ID")
		}
		if doc.Content == "" {
			return fmt.Errorf("document %q has empty content", doc.ID)
		}
		converted = append(converted, chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
	}

	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	if err := collection.AddDocuments(ctx, converted, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding %d documents: %w", len(docs), err)
	}

	s.logger.Debug("documents indexed", "count", len(docs))
	return nil
}

// Search performs semantic search using functional options. Results are
// ordered by cosine similarity, best first. The requested k is clamped to
// the collection size because chromem-go rejects k larger than the number
// of stored documents. An empty collection yields no results, not an error.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	count := collection.Count()
	if count == 0 {
		return nil, nil
	}
	k := cfg.topK
	if k > count {
		k = count
	}

	rows, err := collection.Query(queryCtx, query, k, cfg.filter, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search timeout: %w", err)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, Result{
			Document: Document{
				ID:       row.ID,
				Content:  row.Content,
				Metadata: row.Metadata,
			},
			Similarity: row.Similarity,
		})
	}
	return results, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Count()
}

// Reset drops the collection and recreates it empty. Used when the source
// documents changed and the index must be rebuilt from scratch.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(CollectionName); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(CollectionName, nil, s.embed)
	if err != nil {
		return fmt.Errorf("recreating collection: %w", err)
	}
	s.collection = collection
	s.logger.Debug("collection reset")
	return nil
}
