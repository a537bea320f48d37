package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSetDelete(t *testing.T) {
	c := NewMemoryWithOptions(MemoryOptions{MaxSize: 10, ShardSize: 1})

	_, ok := c.Get(FromString("missing"))
	assert.False(t, ok)

	c.Set(FromString("k"), "v", 0)
	val, ok := c.Get(FromString("k"))
	require.True(t, ok)
	assert.Equal(t, "v", val)

	c.Delete(FromString("k"))
	_, ok = c.Get(FromString("k"))
	assert.False(t, ok)
}

func TestMemoryCacheTTLExpiration(t *testing.T) {
	c := NewMemoryWithOptions(MemoryOptions{MaxSize: 10, ShardSize: 1})
	c.Set(FromString("k"), "v", 5*time.Millisecond)

	_, ok := c.Get(FromString("k"))
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(FromString("k"))
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Expirations)
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	c := NewMemoryWithOptions(MemoryOptions{MaxSize: 2, ShardSize: 1})

	c.Set(FromString("a"), 1, 0)
	c.Set(FromString("b"), 2, 0)

	// Touch "a" so it becomes most-recently-used, leaving "b" to evict.
	_, _ = c.Get(FromString("a"))
	c.Set(FromString("c"), 3, 0)

	_, ok := c.Get(FromString("b"))
	assert.False(t, ok, "least recently used entry should have been evicted")

	_, ok = c.Get(FromString("a"))
	assert.True(t, ok)
	_, ok = c.Get(FromString("c"))
	assert.True(t, ok)

	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestMemoryCacheClearAndSize(t *testing.T) {
	c := NewMemoryWithOptions(MemoryOptions{MaxSize: 100, ShardSize: 4})
	for i := 0; i < 20; i++ {
		c.Set(FromString(fmt.Sprintf("k%d", i)), i, 0)
	}
	assert.Equal(t, 20, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryWithOptions(MemoryOptions{MaxSize: 1000, ShardSize: 8})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := FromString(fmt.Sprintf("k%d", i%10))
			c.Set(key, i, 0)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), 10)
}

func TestNewCachePrefersRedisWhenConfigured(t *testing.T) {
	memCache := NewCache(Options{MaxSize: 10, ShardSize: 1})
	_, isMemory := memCache.(*memoryCache)
	assert.True(t, isMemory)

	redisCacheInstance := NewCache(Options{UseRedis: true, RedisConfig: &RedisOptions{Addr: "localhost:6379"}})
	_, isRedis := redisCacheInstance.(*redisCache)
	assert.True(t, isRedis)
}
