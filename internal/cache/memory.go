// In-memory cache implementation
//
// LRU-based memory cache:
// - Concurrent access support
// - Size-based eviction
// - TTL-based expiration
// - Memory usage limiting

package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"time"
)

// MemoryOptions configures a memory cache instance.
type MemoryOptions struct {
	MaxSize   int // maximum total entries, split evenly across shards (MaxSize/ShardSize each) before LRU eviction kicks in
	ShardSize int // number of shards; 0 or 1 disables sharding
}

// NewMemoryWithOptions creates a new sharded, TTL-aware in-memory cache.
func NewMemoryWithOptions(opts MemoryOptions) Cache {
	if opts.ShardSize <= 0 {
		opts.ShardSize = 1
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 1000
	}

	m := &memoryCache{shards: make([]*shard, opts.ShardSize)}
	for i := range m.shards {
		m.shards[i] = newShard(opts.MaxSize / opts.ShardSize)
	}
	return m
}

type entry struct {
	key       Key
	value     interface{}
	expiresAt time.Time // zero means no expiration
}

type shard struct {
	mu       sync.Mutex
	maxSize  int
	items    map[Key]*list.Element // list.Element.Value is *entry
	order    *list.List            // front = most recently used
	hits     uint64
	misses   uint64
	evicts   uint64
	expires  uint64
}

func newShard(maxSize int) *shard {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &shard{
		maxSize: maxSize,
		items:   make(map[Key]*list.Element),
		order:   list.New(),
	}
}

func (s *shard) get(key Key) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses++
		return nil, false
	}

	e := el.Value.(*entry)
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.order.Remove(el)
		delete(s.items, key)
		s.expires++
		s.misses++
		return nil, false
	}

	s.order.MoveToFront(el)
	s.hits++
	return e.value, true
}

func (s *shard) set(key Key, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := s.items[key]; ok {
		el.Value.(*entry).value = value
		el.Value.(*entry).expiresAt = expiresAt
		s.order.MoveToFront(el)
		return
	}

	el := s.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	s.items[key] = el

	for s.order.Len() > s.maxSize {
		back := s.order.Back()
		if back == nil {
			break
		}
		s.order.Remove(back)
		delete(s.items, back.Value.(*entry).key)
		s.evicts++
	}
}

func (s *shard) delete(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[key]; ok {
		s.order.Remove(el)
		delete(s.items, key)
	}
}

func (s *shard) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[Key]*list.Element)
	s.order = list.New()
}

func (s *shard) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *shard) stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Hits:        s.hits,
		Misses:      s.misses,
		Size:        s.order.Len(),
		Evictions:   s.evicts,
		Expirations: s.expires,
	}
}

// memoryCache is a Cache backed by a fixed set of independently-locked
// shards, keyed by an FNV hash of the cache key, to keep lock contention
// proportional to ShardSize under concurrent proxy traffic.
type memoryCache struct {
	shards []*shard
}

func (m *memoryCache) shardFor(key Key) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

func (m *memoryCache) Get(key Key) (interface{}, bool) {
	return m.shardFor(key).get(key)
}

func (m *memoryCache) Set(key Key, value interface{}, ttl time.Duration) {
	m.shardFor(key).set(key, value, ttl)
}

func (m *memoryCache) Delete(key Key) {
	m.shardFor(key).delete(key)
}

func (m *memoryCache) Clear() {
	for _, s := range m.shards {
		s.clear()
	}
}

func (m *memoryCache) Size() int {
	total := 0
	for _, s := range m.shards {
		total += s.size()
	}
	return total
}

func (m *memoryCache) Stats() Stats {
	var agg Stats
	for _, s := range m.shards {
		st := s.stats()
		agg.Hits += st.Hits
		agg.Misses += st.Misses
		agg.Size += st.Size
		agg.Evictions += st.Evictions
		agg.Expirations += st.Expirations
	}
	return agg
}
