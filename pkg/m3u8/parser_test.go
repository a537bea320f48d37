package m3u8

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMalformedPreamble(t *testing.T) {
	_, err := ParseDefault("#EXT-X-VERSION:3\n", "http://example.com/a.m3u8")
	require.Error(t, err)
	var malformed *MalformedPlaylistError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseMasterPlaylist(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-VERSION:6
#EXT-X-INDEPENDENT-SEGMENTS
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud1",NAME="English",LANGUAGE="en",DEFAULT=YES,AUTOSELECT=YES,URI="audio/en.m3u8"
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud1",NAME="French",LANGUAGE="fr",DEFAULT=NO,AUTOSELECT=YES,URI="audio/fr.m3u8"
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud1",NAME="German",LANGUAGE="de",DEFAULT=NO,AUTOSELECT=NO,URI="audio/de.m3u8"
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aud1",NAME="Spanish",LANGUAGE="es",DEFAULT=NO,AUTOSELECT=NO,URI="audio/es.m3u8"
#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs1",NAME="English",LANGUAGE="en",DEFAULT=YES,AUTOSELECT=YES,URI="subs/en.m3u8"
#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs1",NAME="French",LANGUAGE="fr",DEFAULT=NO,AUTOSELECT=YES,URI="subs/fr.m3u8"
#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs1",NAME="German",LANGUAGE="de",DEFAULT=NO,AUTOSELECT=NO,URI="subs/de.m3u8"
#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs1",NAME="Spanish",LANGUAGE="es",DEFAULT=NO,AUTOSELECT=NO,URI="subs/es.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=600000,CODECS="avc1.4d401e,mp4a.40.2",RESOLUTION=640x360,AUDIO="aud1",SUBTITLES="subs1"
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1200000,CODECS="avc1.4d401f,mp4a.40.2",RESOLUTION=960x540,AUDIO="aud1",SUBTITLES="subs1"
mid/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2400000,CODECS="avc1.4d401f,mp4a.40.2",RESOLUTION=1280x720,AUDIO="aud1",SUBTITLES="subs1"
high/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=4800000,CODECS="avc1.640028,mp4a.40.2",RESOLUTION=1920x1080,AUDIO="aud1",SUBTITLES="subs1"
hd/index.m3u8
#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=60000,CODECS="avc1.4d401e",RESOLUTION=640x360,URI="low/iframe.m3u8"
#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=120000,CODECS="avc1.4d401f",RESOLUTION=960x540,URI="mid/iframe.m3u8"
#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=240000,CODECS="avc1.4d401f",RESOLUTION=1280x720,URI="high/iframe.m3u8"
#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=480000,CODECS="avc1.640028",RESOLUTION=1920x1080,URI="hd/iframe.m3u8"
`
	pl, err := ParseDefault(content, "http://example.com/master.m3u8")
	require.NoError(t, err)

	assert.True(t, pl.IsMaster)
	assert.Equal(t, uint(6), pl.Version)
	assert.True(t, pl.IndependentSegments)

	assert.Len(t, pl.Media, 8)
	assert.Len(t, pl.Playlists, 8)

	var regularVariants, iframeVariants int
	for _, v := range pl.Playlists {
		if v.IsIFrame {
			iframeVariants++
		} else {
			regularVariants++
		}
	}
	assert.Equal(t, 4, regularVariants)
	assert.Equal(t, 4, iframeVariants)

	assert.Equal(t, "http://example.com/low/index.m3u8", pl.Playlists[0].URI)
	assert.Equal(t, uint64(600000), pl.Playlists[0].StreamInfo.Bandwidth)
	assert.Equal(t, Resolution{Width: 640, Height: 360}, pl.Playlists[0].StreamInfo.Resolution)
	assert.Equal(t, []string{"avc1.4d401e", "mp4a.40.2"}, pl.Playlists[0].StreamInfo.Codecs)
	assert.Equal(t, "aud1", pl.Playlists[0].StreamInfo.Audio)
	assert.Equal(t, "subs1", pl.Playlists[0].StreamInfo.Subtitles)

	var iframe VariantPlaylist
	for _, v := range pl.Playlists {
		if v.IsIFrame {
			iframe = v
			break
		}
	}
	assert.Equal(t, "http://example.com/low/iframe.m3u8", iframe.URI)
	assert.Equal(t, uint64(60000), iframe.StreamInfo.Bandwidth)
}

func TestParseMediaPlaylistWithProgramDateTime(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:16
#EXT-X-MEDIA-SEQUENCE:0
#EXT-X-PROGRAM-DATE-TIME:2020-01-01T00:00:00.000Z
#EXTINF:15.0,
seg0.ts
#EXTINF:15.5,
seg1.ts
#EXTINF:29.5,
seg2.ts
#EXTINF:10.0,
seg3.ts
#EXT-X-ENDLIST
`
	pl, err := ParseDefault(content, "http://example.com/media.m3u8")
	require.NoError(t, err)

	assert.False(t, pl.IsMaster)
	assert.True(t, pl.IsEndlist)
	require.NotNil(t, pl.TargetDuration)
	assert.Equal(t, uint(16), *pl.TargetDuration)
	require.Len(t, pl.Segments, 4)

	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NotNil(t, pl.Segments[0].Date)
	assert.Equal(t, base, *pl.Segments[0].Date)

	require.NotNil(t, pl.Segments[1].Date)
	assert.Equal(t, base.Add(15*time.Second), *pl.Segments[1].Date)

	require.NotNil(t, pl.Segments[2].Date)
	assert.Equal(t, base.Add(30500*time.Millisecond), *pl.Segments[2].Date)

	require.NotNil(t, pl.Segments[3].Date)
	assert.Equal(t, base.Add(60*time.Second), *pl.Segments[3].Date)

	for i, seg := range pl.Segments {
		assert.Equal(t, uint64(i), seg.Num)
	}
}

func TestParseStreamInfBandwidthDefaultsToZero(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-STREAM-INF:VIDEO="vid1"
variant.m3u8
`
	pl, err := ParseDefault(content, "http://example.com/master.m3u8")
	require.NoError(t, err)

	require.Len(t, pl.Playlists, 1)
	assert.Equal(t, uint64(0), pl.Playlists[0].StreamInfo.Bandwidth)
	assert.Equal(t, "vid1", pl.Playlists[0].StreamInfo.Video)
}

func TestParseByteRangeContinuation(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-TARGETDURATION:10
#EXT-X-MAP:URI="init.mp4"
#EXT-X-BYTERANGE:1000@0
#EXTINF:10.0,
seg.ts
#EXTINF:10.0,
#EXT-X-BYTERANGE:500
seg.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	pl, err := Parse(content, "http://example.com/media.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)

	require.Len(t, pl.Segments, 2)
	require.NotNil(t, pl.Segments[0].ByteRange)
	assert.Equal(t, uint64(1000), pl.Segments[0].ByteRange.Length)
	require.NotNil(t, pl.Segments[0].ByteRange.Offset)
	assert.Equal(t, uint64(0), *pl.Segments[0].ByteRange.Offset)

	require.NotNil(t, pl.Segments[1].ByteRange)
	assert.Equal(t, uint64(500), pl.Segments[1].ByteRange.Length)
	require.NotNil(t, pl.Segments[1].ByteRange.Offset)
	assert.Equal(t, uint64(1000), *pl.Segments[1].ByteRange.Offset)

	require.NotNil(t, pl.Segments[0].Map)
	assert.Equal(t, "http://example.com/init.mp4", pl.Segments[0].Map.URI)
	require.NotNil(t, pl.Segments[1].Map)
	assert.Equal(t, pl.Segments[0].Map, pl.Segments[1].Map)

	assert.NotContains(t, warnings, WarnByteRangeContinuation)
}

func TestParseByteRangeContinuationResetsOnNewURI(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-BYTERANGE:1000@0
#EXTINF:10.0,
seg0.ts
#EXTINF:10.0,
#EXT-X-BYTERANGE:500
seg1.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	pl, err := Parse(content, "http://example.com/media.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)

	require.Len(t, pl.Segments, 2)
	require.NotNil(t, pl.Segments[1].ByteRange)
	assert.Equal(t, uint64(500), pl.Segments[1].ByteRange.Length)
	require.NotNil(t, pl.Segments[1].ByteRange.Offset)
	assert.Equal(t, uint64(0), *pl.Segments[1].ByteRange.Offset)
	assert.Contains(t, warnings, WarnByteRangeContinuation)
}

func TestParseByteRangeFirstEntryWithoutOffsetDoesNotWarn(t *testing.T) {
	const content = `#EXTM3U
#EXTINF:10.0,
#EXT-X-BYTERANGE:500
seg0.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	pl, err := Parse(content, "http://example.com/media.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)

	require.Len(t, pl.Segments, 1)
	require.NotNil(t, pl.Segments[0].ByteRange)
	assert.Equal(t, uint64(0), *pl.Segments[0].ByteRange.Offset)
	assert.NotContains(t, warnings, WarnByteRangeContinuation)
}

func TestParseStrayURIIsIgnored(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-TARGETDURATION:10
orphan.ts
#EXTINF:10.0,
seg0.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	pl, err := Parse(content, "http://example.com/media.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)

	require.Len(t, pl.Segments, 1)
	assert.Equal(t, "http://example.com/seg0.ts", pl.Segments[0].URI)
	assert.Contains(t, warnings, WarnStrayURI)
}

func TestParseKeyPersistsAcrossDiscontinuity(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-KEY:METHOD=AES-128,URI="key.bin",IV=0x00000000000000000000000000000001
#EXTINF:10.0,
seg0.ts
#EXT-X-DISCONTINUITY
#EXTINF:10.0,
seg1.ts
`
	pl, err := ParseDefault(content, "http://example.com/media.m3u8")
	require.NoError(t, err)

	require.Len(t, pl.Segments, 2)
	require.NotNil(t, pl.Segments[0].Key)
	require.NotNil(t, pl.Segments[1].Key)
	assert.Equal(t, pl.Segments[0].Key.URI, pl.Segments[1].Key.URI)
	assert.True(t, pl.Segments[1].Discontinuity)
	assert.False(t, pl.Segments[0].Discontinuity)
}

func TestParseKeyMethodNoneClearsActiveKey(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-KEY:METHOD=AES-128,URI="key.bin"
#EXTINF:10.0,
seg0.ts
#EXT-X-KEY:METHOD=NONE
#EXTINF:10.0,
seg1.ts
`
	pl, err := ParseDefault(content, "http://example.com/media.m3u8")
	require.NoError(t, err)

	require.Len(t, pl.Segments, 2)
	require.NotNil(t, pl.Segments[0].Key)
	assert.Nil(t, pl.Segments[1].Key)
	assert.Len(t, pl.Keys, 2)
}

func TestParseLateMediaSequenceWarns(t *testing.T) {
	const content = `#EXTM3U
#EXTINF:10.0,
seg0.ts
#EXT-X-MEDIA-SEQUENCE:5
#EXTINF:10.0,
seg1.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	_, err := Parse(content, "http://example.com/media.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)
	assert.Contains(t, warnings, WarnLateMediaSequence)
}

func TestParseMixedPlaylistTypeWarns(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=1000
variant.m3u8
#EXTINF:10.0,
seg0.ts
`
	var warnings []string
	src := NewParser()
	src.Warn = func(msg string) { warnings = append(warnings, msg) }
	_, err := Parse(content, "http://example.com/x.m3u8", func() TagHandlerSource { return src })
	require.NoError(t, err)
	assert.Contains(t, warnings, WarnMixedPlaylistType)
}

func TestParseDateRangeSuite(t *testing.T) {
	const content = `#EXTM3U
#EXT-X-DATERANGE:ID="ad1",CLASS="com.example.ad",START-DATE="2020-01-01T00:00:00.000Z",DURATION=30.0,X-COM-EXAMPLE-AD-ID="12345"
#EXTINF:10.0,
seg0.ts
`
	pl, err := ParseDefault(content, "http://example.com/media.m3u8")
	require.NoError(t, err)

	require.Len(t, pl.DateRanges, 1)
	dr := pl.DateRanges[0]
	assert.Equal(t, "ad1", dr.ID)
	assert.Equal(t, "com.example.ad", dr.Class)
	require.NotNil(t, dr.Duration)
	assert.Equal(t, 30*time.Second, *dr.Duration)
	assert.Equal(t, "12345", dr.X["X-COM-EXAMPLE-AD-ID"])

	within := time.Date(2020, 1, 1, 0, 0, 15, 0, time.UTC)
	result := IsDateInDateRange(&within, dr)
	require.NotNil(t, result)
	assert.True(t, *result)
}
