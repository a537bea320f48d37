package m3u8

import "time"

// Playlist is the root value produced by Parse: either a master
// (multivariant) playlist or a media playlist, never both.
type Playlist struct {
	URI      string
	IsMaster bool
	Version  uint

	TargetDuration        *uint
	MediaSequence         uint64
	DiscontinuitySequence uint64
	IsEndlist             bool
	PlaylistType          PlaylistType
	IFramesOnly           bool
	AllowCache            *bool
	Start                 *StartPoint
	IndependentSegments   bool

	Media     []Media
	Playlists []VariantPlaylist // master only
	Segments  []Segment         // media only
	Keys      []Key
	DateRanges []DateRange
}

// StartPoint is the decoded EXT-X-START tag.
type StartPoint struct {
	TimeOffset float64
	Precise    bool
}

// Media is one EXT-X-MEDIA entry in a master playlist.
type Media struct {
	URI             string // empty for CLOSED-CAPTIONS
	Type            MediaType
	GroupID         string
	Language        string
	Name            string
	Default         bool
	Autoselect      bool
	Forced          bool
	Characteristics string
}

// VariantPlaylist is one EXT-X-STREAM-INF (or EXT-X-I-FRAME-STREAM-INF)
// entry in a master playlist; URI is always absolute.
type VariantPlaylist struct {
	URI        string
	StreamInfo StreamInfo
	IsIFrame   bool
}

// StreamInfo is the attribute list of an EXT-X-STREAM-INF tag.
type StreamInfo struct {
	Bandwidth  uint64
	ProgramID  string
	Codecs     []string
	Resolution Resolution
	Audio      string
	Video      string
	Subtitles  string
}

// Resolution is a decoded RESOLUTION attribute, e.g. "1920x1080".
type Resolution struct {
	Width  uint
	Height uint
}

// ByteRange is a decoded EXT-X-BYTERANGE value or BYTERANGE attribute.
type ByteRange struct {
	Length uint64
	Offset *uint64
}

// ExtInf is the decoded value of an #EXTINF tag.
type ExtInf struct {
	Duration float64
	Title    string
}

// Key is a decoded EXT-X-KEY tag.
type Key struct {
	Method            KeyMethod
	URI               string // absolute; empty when Method == KeyMethodNone
	IV                []byte
	KeyFormat         string
	KeyFormatVersions string
}

// Map is a decoded EXT-X-MAP tag.
type Map struct {
	URI       string // absolute
	ByteRange *ByteRange
}

// Segment is one media segment in a media playlist.
type Segment struct {
	URI           string // absolute
	Num           uint64
	Duration      float64
	Title         string
	Date          *time.Time
	Key           *Key
	Map           *Map
	Discontinuity bool
	ByteRange     *ByteRange
}

// DateRange is a decoded EXT-X-DATERANGE tag.
type DateRange struct {
	ID              string
	Class           string
	StartDate       *time.Time
	EndDate         *time.Time
	Duration        *time.Duration
	PlannedDuration *time.Duration
	EndOnNext       bool
	X               map[string]string
}
