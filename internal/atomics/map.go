package atomics

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/dchest/siphash"
)

// defaultShardCount is a power of two so shard selection is a mask, not a
// modulo.
const defaultShardCount = 16

// Map is a sharded, thread-safe map keyed by anything comparable whose bytes
// we can derive for hashing. Shard selection uses SipHash-2-4 with a
// process-random key, a DoS-resistant hash so a caller cannot pick keys
// that collide into a single shard and serialize access.
type Map[K comparable, V any] struct {
	key    [16]byte
	shards []*mapShard[K, V]
	mask   uint64
}

type mapShard[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// NewMap creates a Map with the default shard count.
func NewMap[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{
		shards: make([]*mapShard[K, V], defaultShardCount),
		mask:   uint64(defaultShardCount - 1),
	}
	if _, err := rand.Read(m.key[:]); err != nil {
		panic(fmt.Sprintf("atomics: crypto/rand failed: %v", err))
	}
	for i := range m.shards {
		m.shards[i] = &mapShard[K, V]{m: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) shardFor(k K) *mapShard[K, V] {
	k0 := binary.LittleEndian.Uint64(m.key[:8])
	k1 := binary.LittleEndian.Uint64(m.key[8:])
	h := siphash.Hash(k0, k1, []byte(fmt.Sprintf("%v", k)))
	return m.shards[h&m.mask]
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	s := m.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[k]
	return v, ok
}

func (m *Map[K, V]) Set(k K, v V) {
	s := m.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[k] = v
}

func (m *Map[K, V]) Delete(k K) {
	s := m.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, k)
}

// Update atomically applies fn to the existing value (zero value if absent)
// and stores the result.
func (m *Map[K, V]) Update(k K, fn func(V, bool) V) V {
	s := m.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[k]
	next := fn(cur, ok)
	s.m[k] = next
	return next
}

// ForEach iterates every shard in turn, holding each shard's lock for the
// duration of fn. fn MUST NOT re-enter this Map.
func (m *Map[K, V]) ForEach(fn func(K, V)) {
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.m {
			fn(k, v)
		}
		s.mu.Unlock()
	}
}

func (m *Map[K, V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.Lock()
		total += len(s.m)
		s.mu.Unlock()
	}
	return total
}
