package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// DiskStore persists results as JSON files so a restart does not
// discard prior analyses within the TTL window.
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a new disk store rooted at dir
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Result    *model.AnalysisResult `json:"result"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// Get retrieves a result from disk, discarding expired entries
func (s *DiskStore) Get(key string) (*model.AnalysisResult, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(s.path(key))
		return nil, false
	}

	return entry.Result, entry.Result != nil
}

// Set stores a result on disk with the given TTL
func (s *DiskStore) Set(key string, result *model.AnalysisResult, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	data, err := json.Marshal(diskEntry{
		Result:    result,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a result from disk
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes all cached files
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
