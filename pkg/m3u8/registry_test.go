package m3u8

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryForSharesSameInstanceType(t *testing.T) {
	a := registryFor(NewParser())
	b := registryFor(NewParser())
	assert.Same(t, a, b)
}

// customParser overrides EXT-X-VERSION and adds a vendor extension tag,
// without touching BaseParser's registry.
type customParser struct {
	BaseParser
	sawFooBar bool
}

func (c *customParser) TagHandlers() []HandlerSpec {
	handlers := append([]HandlerSpec{}, c.BaseParser.TagHandlers()...)
	handlers = append(handlers,
		HandlerSpec{
			Names: []string{TagVersion},
			Fn: func(b *BaseParser, attrs string) error {
				b.playlist.Version = 999
				return nil
			},
		},
		HandlerSpec{
			Names: []string{"#EXT-X-FOO-BAR"},
			Fn: func(b *BaseParser, attrs string) error {
				return nil
			},
		},
	)
	return handlers
}

func TestRegistryOverrideDoesNotLeakToBase(t *testing.T) {
	baseReg := registryFor(NewParser())
	customReg := registryFor(&customParser{})

	assert.NotSame(t, baseReg, customReg)

	_, baseKnowsFooBar := baseReg.lookup("#EXT-X-FOO-BAR")
	assert.False(t, baseKnowsFooBar)

	_, customKnowsFooBar := customReg.lookup("#EXT-X-FOO-BAR")
	assert.True(t, customKnowsFooBar)

	baseVersionFn, ok := baseReg.lookup(TagVersion)
	require.True(t, ok)
	customVersionFn, ok := customReg.lookup(TagVersion)
	require.True(t, ok)

	var baseParser BaseParser
	baseParser.playlist = &Playlist{}
	_ = baseVersionFn(&baseParser, "5")
	assert.Equal(t, uint(5), baseParser.playlist.Version)

	var customBase BaseParser
	customBase.playlist = &Playlist{}
	_ = customVersionFn(&customBase, "5")
	assert.Equal(t, uint(999), customBase.playlist.Version)
}

func TestRegistrySameTypeTwiceReturnsCachedInstance(t *testing.T) {
	first := registryFor(&customParser{})
	second := registryFor(&customParser{})
	assert.Same(t, first, second)
}

// concurrentParser exists only so its first registryFor call in
// TestRegistryConcurrentFirstUse races with no prior cache entry to pollute
// the result.
type concurrentParser struct {
	BaseParser
}

func TestRegistryConcurrentFirstUse(t *testing.T) {
	const goroutines = 32

	var wg sync.WaitGroup
	results := make([]*registry, goroutines)
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = registryFor(&concurrentParser{})
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i], "all goroutines racing the first registryFor call must observe the same cached registry")
	}
}
