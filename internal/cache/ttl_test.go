package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLForPlaylist(t *testing.T) {
	master := []byte("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=100000\nlow.m3u8\n")
	media := []byte("#EXTM3U\n#EXT-X-TARGETDURATION:6\n#EXTINF:6,\nseg0.ts\n")

	assert.Equal(t, 30*time.Second, TTLForPlaylist(master, 30*time.Second, 2*time.Second))
	assert.Equal(t, 2*time.Second, TTLForPlaylist(media, 30*time.Second, 2*time.Second))
}

func TestJitter(t *testing.T) {
	t.Run("zero fraction returns ttl unchanged", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, Jitter(10*time.Second, 0))
	})

	t.Run("fraction out of range is clamped to no jitter", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, Jitter(10*time.Second, 1))
		assert.Equal(t, 10*time.Second, Jitter(10*time.Second, 1.5))
	})

	t.Run("jittered result stays within the requested fraction", func(t *testing.T) {
		ttl := 10 * time.Second
		fraction := 0.2
		for i := 0; i < 100; i++ {
			got := Jitter(ttl, fraction)
			delta := float64(ttl) * fraction
			assert.InDelta(t, float64(ttl), float64(got), delta)
		}
	})
}
