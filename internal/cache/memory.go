package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// MemoryStore keeps results in process memory with TTL eviction
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a new memory store
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a result from the store
func (s *MemoryStore) Get(key string) (*model.AnalysisResult, bool) {
	if val, found := s.cache.Get(key); found {
		if res, ok := val.(*model.AnalysisResult); ok {
			return res, true
		}
	}
	return nil, false
}

// Set stores a result with the given TTL
func (s *MemoryStore) Set(key string, result *model.AnalysisResult, ttl time.Duration) error {
	s.cache.Set(key, result, ttl)
	return nil
}

// Delete removes a result from the store
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all results
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
