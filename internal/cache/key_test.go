package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStringAndFromURL(t *testing.T) {
	assert.Equal(t, Key("abc"), FromString("abc"))
	assert.Equal(t, Key("url:http://example.com/x.m3u8"), FromURL("http://example.com/x.m3u8"))
}

func TestForOriginStability(t *testing.T) {
	t.Run("same url and token produce the same key", func(t *testing.T) {
		k1 := ForOrigin("http://origin.example.com/a.m3u8", "tok-1")
		k2 := ForOrigin("http://origin.example.com/a.m3u8", "tok-1")
		assert.Equal(t, k1, k2)
	})

	t.Run("different tokens produce different keys", func(t *testing.T) {
		k1 := ForOrigin("http://origin.example.com/a.m3u8", "tok-1")
		k2 := ForOrigin("http://origin.example.com/a.m3u8", "tok-2")
		assert.NotEqual(t, k1, k2)
	})

	t.Run("different urls produce different keys", func(t *testing.T) {
		k1 := ForOrigin("http://origin.example.com/a.m3u8", "tok-1")
		k2 := ForOrigin("http://origin.example.com/b.m3u8", "tok-1")
		assert.NotEqual(t, k1, k2)
	})

	t.Run("empty token is not confused with a present one", func(t *testing.T) {
		withToken := ForOrigin("http://origin.example.com/a.m3u8", "tok")
		withoutToken := ForOrigin("http://origin.example.com/a.m3u8", "")
		assert.NotEqual(t, withToken, withoutToken)
	})

	t.Run("prefix separates playlist and segment keyspaces", func(t *testing.T) {
		playlistKey := ForOrigin("http://origin.example.com/a.m3u8", "tok", WithPrefix("playlist:"))
		segmentKey := ForOrigin("http://origin.example.com/a.m3u8", "tok", WithPrefix("segment:"))
		assert.NotEqual(t, playlistKey, segmentKey)
		assert.Contains(t, string(playlistKey), "playlist:")
		assert.Contains(t, string(segmentKey), "segment:")
	})

	t.Run("hash produces a stable fixed-length digest", func(t *testing.T) {
		key := ForOrigin("http://origin.example.com/a.m3u8", "tok", WithHash())
		assert.Len(t, string(key), 64)
		assert.Equal(t, ForOrigin("http://origin.example.com/a.m3u8", "tok", WithHash()), key)
	})
}
