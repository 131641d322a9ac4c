package openaianalytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCache(t *testing.T) {
	t.Run("miss on empty cache", func(t *testing.T) {
		cache := NewEmbeddingCache()

		_, ok := cache.Get(DefaultCacheScope, "model-a", "sports")
		assert.False(t, ok)
	})

	t.Run("put then get", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put(DefaultCacheScope, "model-a", "sports", []float32{1, 0})

		embedding, ok := cache.Get(DefaultCacheScope, "model-a", "sports")
		require.True(t, ok)
		assert.Equal(t, []float32{1, 0}, embedding)
	})

	t.Run("entries are scoped by model", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put(DefaultCacheScope, "model-a", "sports", []float32{1, 0})

		_, ok := cache.Get(DefaultCacheScope, "model-b", "sports")
		assert.False(t, ok)
	})

	t.Run("entries are scoped by scope id", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put("workflow-1", "model-a", "sports", []float32{1, 0})

		_, ok := cache.Get("workflow-2", "model-a", "sports")
		assert.False(t, ok)
	})

	t.Run("put overwrites", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put(DefaultCacheScope, "model-a", "sports", []float32{1, 0})
		cache.Put(DefaultCacheScope, "model-a", "sports", []float32{0, 1})

		embedding, ok := cache.Get(DefaultCacheScope, "model-a", "sports")
		require.True(t, ok)
		assert.Equal(t, []float32{0, 1}, embedding)
	})

	t.Run("clear drops one scope only", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put("workflow-1", "model-a", "sports", []float32{1, 0})
		cache.Put("workflow-2", "model-a", "sports", []float32{1, 0})

		cache.Clear("workflow-1", "model-a")

		_, ok := cache.Get("workflow-1", "model-a", "sports")
		assert.False(t, ok)

		_, ok = cache.Get("workflow-2", "model-a", "sports")
		assert.True(t, ok)
	})

	t.Run("clear all", func(t *testing.T) {
		cache := NewEmbeddingCache()
		cache.Put("workflow-1", "model-a", "sports", []float32{1, 0})
		cache.Put("workflow-2", "model-b", "politics", []float32{0, 1})

		cache.ClearAll()

		_, ok := cache.Get("workflow-1", "model-a", "sports")
		assert.False(t, ok)

		_, ok = cache.Get("workflow-2", "model-b", "politics")
		assert.False(t, ok)
	})
}
