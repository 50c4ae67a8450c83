package cache

import (
	"time"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// LayeredStore checks memory first, then disk, promoting disk hits
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory+disk store
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get retrieves a result, promoting disk hits into memory
func (s *LayeredStore) Get(key string) (*model.AnalysisResult, bool) {
	if res, found := s.memory.Get(key); found {
		return res, true
	}

	if res, found := s.disk.Get(key); found {
		_ = s.memory.Set(key, res, 0)
		return res, true
	}

	return nil, false
}

// Set stores a result in both layers
func (s *LayeredStore) Set(key string, result *model.AnalysisResult, ttl time.Duration) error {
	if err := s.memory.Set(key, result, ttl); err != nil {
		return err
	}
	return s.disk.Set(key, result, ttl)
}

// Delete removes a result from both layers
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	return s.disk.Delete(key)
}

// Clear removes all results from both layers
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	return s.disk.Clear()
}
