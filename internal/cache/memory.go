package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const minGenerationSlots = 1024

// MemoryStore keeps entries in a size-bounded, expiring LRU inside the process.
//
// Owner generations live in a bounded LRU too. They are drawn from one
// store-wide epoch that only grows, so an owner whose counter was evicted
// resumes at the current epoch, never at a value an older entry was cached under.
type MemoryStore struct {
	entries *expirable.LRU[string, []byte]

	mu          sync.Mutex
	epoch       uint64
	generations *lru.Cache[string, uint64]
}

// NewMemoryStore holds at most size entries, each for at most ttl.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 1
	}
	return newMemoryStore(size, ttl, max(size, minGenerationSlots))
}

func newMemoryStore(size int, ttl time.Duration, generationSlots int) *MemoryStore {
	generations, err := lru.New[string, uint64](generationSlots)
	if err != nil {
		// only a non-positive size fails
		panic(err)
	}
	return &MemoryStore{
		entries:     expirable.NewLRU[string, []byte](size, nil, ttl),
		generations: generations,
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.entries.Get(key)
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.entries.Add(key, value)
	return nil
}

func (m *MemoryStore) Generation(_ context.Context, ownerID string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen, ok := m.generations.Get(ownerID); ok {
		return gen, nil
	}
	m.generations.Add(ownerID, m.epoch)
	return m.epoch, nil
}

func (m *MemoryStore) Bump(_ context.Context, ownerID string) error {
	m.mu.Lock()
	m.epoch++
	m.generations.Add(ownerID, m.epoch)
	m.mu.Unlock()
	return nil
}

// Len is the number of live entries.
func (m *MemoryStore) Len() int {
	return m.entries.Len()
}
