package openaianalytics

import (
	"sync"
)

// DefaultCacheScope is used when the caller supplies no scope identifier.
const DefaultCacheScope = "default"

type cacheScope struct {
	ScopeID string
	Model   string
}

// EmbeddingCache stores category embeddings per (scope, model) so repeated
// classifications with the same category set skip redundant embedding
// requests. Entries live until explicitly cleared; a miss only costs a
// recompute, so callers never depend on a hit. The cache is owned by the
// integration creator and shared across executions.
type EmbeddingCache struct {
	mtx     sync.RWMutex
	entries map[cacheScope]map[string][]float32
}

func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{
		entries: make(map[cacheScope]map[string][]float32),
	}
}

func (c *EmbeddingCache) Get(scopeID, model, label string) ([]float32, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	labels, ok := c.entries[cacheScope{ScopeID: scopeID, Model: model}]
	if !ok {
		return nil, false
	}

	embedding, ok := labels[label]
	return embedding, ok
}

// Put stores an embedding for the label, overwriting any prior entry. The
// cache is an optimization, not a source of truth, so last write wins.
func (c *EmbeddingCache) Put(scopeID, model, label string, embedding []float32) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	scope := cacheScope{ScopeID: scopeID, Model: model}

	labels, ok := c.entries[scope]
	if !ok {
		labels = make(map[string][]float32)
		c.entries[scope] = labels
	}

	labels[label] = embedding
}

func (c *EmbeddingCache) Clear(scopeID, model string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	delete(c.entries, cacheScope{ScopeID: scopeID, Model: model})
}

func (c *EmbeddingCache) ClearAll() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.entries = make(map[cacheScope]map[string][]float32)
}
