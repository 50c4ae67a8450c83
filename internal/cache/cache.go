// Package cache stores finished analysis results keyed by a hash of
// the normalized document text, so re-uploading an unchanged document
// does not spend another round of model calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// Store defines the interface for analysis result caching
type Store interface {
	Get(key string) (*model.AnalysisResult, bool)
	Set(key string, result *model.AnalysisResult, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a document's normalized text
func Key(documentText string) string {
	hash := sha256.Sum256([]byte(documentText))
	return "legalease:v1:" + hex.EncodeToString(hash[:])
}
