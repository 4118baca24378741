package reconcile

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const summaryCacheKey = "last-known-summary"

// CacheStore is an in-memory SnapshotStore backed by an expiring cache.
// It replaces the ambient browser-global storage of the source system with
// an explicit, typed handoff point.
type CacheStore struct {
	cache *cache.Cache
}

// NewCacheStore creates a store whose entries expire after ttl and are
// purged at twice that interval.
func NewCacheStore(ttl time.Duration) *CacheStore {
	return &CacheStore{cache: cache.New(ttl, 2*ttl)}
}

// PutSummary stores the latest summary lines.
func (s *CacheStore) PutSummary(lines []string) {
	copied := make([]string, len(lines))
	copy(copied, lines)
	s.cache.Set(summaryCacheKey, copied, cache.DefaultExpiration)
}

// Summary returns the cached summary lines, if any.
func (s *CacheStore) Summary() ([]string, bool) {
	if x, found := s.cache.Get(summaryCacheKey); found {
		return x.([]string), true
	}
	return nil, false
}
