package m3u8

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYesNo(t *testing.T) {
	assert.True(t, ParseYesNo("YES"))
	assert.False(t, ParseYesNo("NO"))
	assert.False(t, ParseYesNo("anything-else"))
	assert.False(t, ParseYesNo(""))
}

func TestParseHex(t *testing.T) {
	b, ok := ParseHex("0xdeadbee")
	require.True(t, ok)
	assert.Equal(t, []byte{0x0d, 0xea, 0xdb, 0xee}, b)

	b, ok = ParseHex("0xDEADBEEF")
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	_, ok = ParseHex("deadbeef")
	assert.False(t, ok)

	_, ok = ParseHex("0xzz")
	assert.False(t, ok)
}

func TestParseByteRange(t *testing.T) {
	br, ok := ParseByteRange("1234@5678")
	require.True(t, ok)
	require.NotNil(t, br.Offset)
	assert.Equal(t, uint64(1234), br.Length)
	assert.Equal(t, uint64(5678), *br.Offset)

	br, ok = ParseByteRange("1234")
	require.True(t, ok)
	assert.Nil(t, br.Offset)
	assert.Equal(t, uint64(1234), br.Length)

	_, ok = ParseByteRange("")
	assert.False(t, ok)

	_, ok = ParseByteRange("not-a-number")
	assert.False(t, ok)
}

func TestParseExtInf(t *testing.T) {
	e := ParseExtInf("123.456,foo")
	assert.Equal(t, 123.456, e.Duration)
	assert.Equal(t, "foo", e.Title)

	e = ParseExtInf("invalid")
	assert.Equal(t, 0.0, e.Duration)
	assert.Equal(t, "", e.Title)

	e = ParseExtInf("10.0")
	assert.Equal(t, 10.0, e.Duration)
	assert.Equal(t, "", e.Title)
}

func TestParseISO8601(t *testing.T) {
	_, ok := ParseISO8601("2000-01-01")
	assert.False(t, ok)

	ts, ok := ParseISO8601("2000-01-01T00:00:00.000Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	ts, ok = ParseISO8601("2000-01-01T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	_, ok = ParseISO8601("not-a-date")
	assert.False(t, ok)
}

func TestParseResolution(t *testing.T) {
	assert.Equal(t, Resolution{Width: 1920, Height: 1080}, ParseResolution("1920x1080"))
	assert.Equal(t, Resolution{}, ParseResolution("garbage"))
	assert.Equal(t, Resolution{}, ParseResolution(""))
}
