// Package cache stores fetched pages and model predictions. Entries are
// opaque byte slices keyed by Key.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Namespaces used by Key
const (
	NamespacePage       = "page"
	NamespacePrediction = "prediction"
)

// Key generates a cache key from a namespace and an input such as a URL
// or a normalized text
func Key(namespace, input string) string {
	hash := sha256.Sum256([]byte(input))
	return "credence:v1:" + namespace + ":" + hex.EncodeToString(hash[:])
}

// New builds the configured cache: memory in front of disk, memory only
// when no directory is set, or a no-op cache when caching is disabled
func New(cfg model.CacheConfig) Cache {
	switch {
	case !cfg.Enabled:
		return Nop{}
	case cfg.Dir == "":
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	default:
		return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
	}
}

// Nop never stores anything
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)                { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                      { return nil }
func (Nop) Clear() error                             { return nil }
