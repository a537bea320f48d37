package m3u8

// Tag names, verbatim as they appear on an M3U8 line (without the trailing
// colon or attribute value).
const (
	TagM3U                    = "#EXTM3U"
	TagVersion                = "#EXT-X-VERSION"
	TagTargetDuration         = "#EXT-X-TARGETDURATION"
	TagMediaSequence          = "#EXT-X-MEDIA-SEQUENCE"
	TagDiscontinuitySequence  = "#EXT-X-DISCONTINUITY-SEQUENCE"
	TagEndList                = "#EXT-X-ENDLIST"
	TagPlaylistType           = "#EXT-X-PLAYLIST-TYPE"
	TagIFramesOnly            = "#EXT-X-I-FRAMES-ONLY"
	TagAllowCache             = "#EXT-X-ALLOW-CACHE"
	TagStart                  = "#EXT-X-START"
	TagInf                    = "#EXTINF"
	TagByteRange              = "#EXT-X-BYTERANGE"
	TagDiscontinuity          = "#EXT-X-DISCONTINUITY"
	TagKey                    = "#EXT-X-KEY"
	TagMap                    = "#EXT-X-MAP"
	TagProgramDateTime        = "#EXT-X-PROGRAM-DATE-TIME"
	TagDateRange              = "#EXT-X-DATERANGE"
	TagMedia                  = "#EXT-X-MEDIA"
	TagStreamInf              = "#EXT-X-STREAM-INF"
	TagIFrameStreamInf        = "#EXT-X-I-FRAME-STREAM-INF"
	TagIndependentSegments    = "#EXT-X-INDEPENDENT-SEGMENTS"
)

// Attribute names used across the tags above.
const (
	AttrBandwidth      = "BANDWIDTH"
	AttrProgramID      = "PROGRAM-ID"
	AttrCodecs         = "CODECS"
	AttrResolution     = "RESOLUTION"
	AttrAudio          = "AUDIO"
	AttrVideo          = "VIDEO"
	AttrSubtitles      = "SUBTITLES"
	AttrClosedCaptions = "CLOSED-CAPTIONS"
	AttrURI            = "URI"

	AttrType            = "TYPE"
	AttrGroupID         = "GROUP-ID"
	AttrLanguage        = "LANGUAGE"
	AttrName            = "NAME"
	AttrDefault         = "DEFAULT"
	AttrAutoselect      = "AUTOSELECT"
	AttrForced          = "FORCED"
	AttrCharacteristics = "CHARACTERISTICS"

	AttrMethod            = "METHOD"
	AttrIV                = "IV"
	AttrKeyFormat         = "KEYFORMAT"
	AttrKeyFormatVersions = "KEYFORMATVERSIONS"

	AttrByteRange = "BYTERANGE"

	AttrTimeOffset = "TIME-OFFSET"
	AttrPrecise    = "PRECISE"

	AttrID              = "ID"
	AttrClass           = "CLASS"
	AttrStartDate       = "START-DATE"
	AttrEndDate         = "END-DATE"
	AttrDuration        = "DURATION"
	AttrPlannedDuration = "PLANNED-DURATION"
	AttrEndOnNext       = "END-ON-NEXT"
)

// MediaType is the TYPE attribute of an EXT-X-MEDIA tag.
type MediaType string

const (
	MediaTypeAudio          MediaType = "AUDIO"
	MediaTypeVideo          MediaType = "VIDEO"
	MediaTypeSubtitles      MediaType = "SUBTITLES"
	MediaTypeClosedCaptions MediaType = "CLOSED-CAPTIONS"
)

// KeyMethod is the METHOD attribute of an EXT-X-KEY tag.
type KeyMethod string

const (
	KeyMethodNone      KeyMethod = "NONE"
	KeyMethodAES128    KeyMethod = "AES-128"
	KeyMethodSampleAES KeyMethod = "SAMPLE-AES"
)

// PlaylistType is the value of EXT-X-PLAYLIST-TYPE.
type PlaylistType string

const (
	PlaylistTypeNone  PlaylistType = ""
	PlaylistTypeVOD   PlaylistType = "VOD"
	PlaylistTypeEvent PlaylistType = "EVENT"
)
