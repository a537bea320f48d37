package m3u8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoundTripsMediaPlaylist(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:5
#EXTINF:9.5,first segment
seg0.ts
#EXT-X-DISCONTINUITY
#EXTINF:10.0,
seg1.ts
#EXT-X-ENDLIST
`
	pl, err := ParseDefault(content, "http://example.com/media.m3u8")
	require.NoError(t, err)

	out := Write(pl)
	pl2, err := ParseDefault(out, "http://example.com/media.m3u8")
	require.NoError(t, err)

	assert.Equal(t, pl.Version, pl2.Version)
	require.NotNil(t, pl2.TargetDuration)
	assert.Equal(t, *pl.TargetDuration, *pl2.TargetDuration)
	assert.Equal(t, pl.MediaSequence, pl2.MediaSequence)
	assert.True(t, pl2.IsEndlist)
	require.Len(t, pl2.Segments, 2)
	assert.Equal(t, pl.Segments[0].Duration, pl2.Segments[0].Duration)
	assert.Equal(t, pl.Segments[0].Title, pl2.Segments[0].Title)
	assert.Equal(t, pl.Segments[0].URI, pl2.Segments[0].URI)
	assert.True(t, pl2.Segments[1].Discontinuity)
}

func TestWriteRoundTripsMasterPlaylist(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-VERSION:6
#EXT-X-STREAM-INF:BANDWIDTH=1200000,CODECS="avc1.4d401f,mp4a.40.2",RESOLUTION=960x540
mid/index.m3u8
`
	pl, err := ParseDefault(content, "http://example.com/master.m3u8")
	require.NoError(t, err)

	out := Write(pl)
	pl2, err := ParseDefault(out, "http://example.com/master.m3u8")
	require.NoError(t, err)

	assert.True(t, pl2.IsMaster)
	require.Len(t, pl2.Playlists, 1)
	assert.Equal(t, pl.Playlists[0].StreamInfo.Bandwidth, pl2.Playlists[0].StreamInfo.Bandwidth)
	assert.Equal(t, pl.Playlists[0].StreamInfo.Resolution, pl2.Playlists[0].StreamInfo.Resolution)
	assert.Equal(t, pl.Playlists[0].StreamInfo.Codecs, pl2.Playlists[0].StreamInfo.Codecs)
	assert.Equal(t, pl.Playlists[0].URI, pl2.Playlists[0].URI)
}
