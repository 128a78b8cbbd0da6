package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/arlochr/spellserve/pkg/spell"
)

// resultCache keeps recent check results keyed by word and radius.
// Eviction is LRU via a logical access clock. Get takes the write lock
// because a hit bumps recency.
type resultCache struct {
	results     map[string]spell.Result
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.RWMutex
}

func newResultCache(maxEntries int) *resultCache {
	return &resultCache{
		results:    make(map[string]spell.Result, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (rc *resultCache) enabled() bool {
	return rc.maxEntries > 0
}

func (rc *resultCache) Get(key string) (spell.Result, bool) {
	if !rc.enabled() {
		return spell.Result{}, false
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	res, ok := rc.results[key]
	if !ok {
		return spell.Result{}, false
	}

	rc.hits++
	rc.accessTime[key] = rc.getNextAccessTime()
	return res, true
}

func (rc *resultCache) Put(key string, res spell.Result) {
	if !rc.enabled() {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.results[key]; !exists && len(rc.results) >= rc.maxEntries {
		rc.evictLRU()
	}

	rc.results[key] = res
	rc.accessTime[key] = rc.getNextAccessTime()
}

func (rc *resultCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.results)
}

func (rc *resultCache) Hits() int64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.hits
}

func (rc *resultCache) getNextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *resultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = 9223372036854775807

	for key, accessTime := range rc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(rc.results, oldestKey)
		delete(rc.accessTime, oldestKey)
		log.Debugf("Evicted '%s' from result cache", oldestKey)
	}
}
