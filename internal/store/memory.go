package store

import (
	"sync"
	"time"

	"github.com/i474232898/daylight/internal/solar"
)

type entry struct {
	obs      solar.Observation
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of solar observations.
// It lives for the process lifetime; nothing is persisted.
type MemoryStore struct {
	mu sync.RWMutex

	data map[solar.CacheKey]entry

	// degradedTTL bounds how long an unknown observation is served
	// (0 = forever, like a known one).
	degradedTTL time.Duration
	now         func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If degradedTTL is <= 0, degraded observations never expire.
func NewMemoryStore(degradedTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[solar.CacheKey]entry),
		degradedTTL: degradedTTL,
		now:         time.Now,
	}
}

// Save stores obs under key, replacing any previous entry.
func (s *MemoryStore) Save(key solar.CacheKey, obs solar.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry{obs: obs, storedAt: s.now()}
}

// Get returns the observation stored under key. Degraded entries older than
// the configured TTL are reported as missing so the caller fetches again.
func (s *MemoryStore) Get(key solar.CacheKey) (solar.Observation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return solar.Observation{}, false
	}
	if !e.obs.Known() && s.degradedTTL > 0 && s.now().Sub(e.storedAt) >= s.degradedTTL {
		return solar.Observation{}, false
	}
	return e.obs, true
}

// Len returns the number of cached observations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
