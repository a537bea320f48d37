package m3u8

import (
	"bufio"
	"net/url"
	"strings"
	"time"
)

// BaseParser holds the mutable state a single Parse call threads through
// every tag handler: the playlist under construction, the pending
// "segment decorator" state (§4.4), the active key/map, and the
// program-date-time accumulator (I2). It implements TagHandlerSource with
// the built-in RFC 8216 tag set; embed it (directly, or via Parser) to
// extend or override that set.
type BaseParser struct {
	Warn WarnFunc

	playlist *Playlist
	base     *url.URL

	sawStreamInf bool
	sawExtInf    bool
	preambleOK   bool

	pendingStreamInfo *StreamInfo
	pendingExtInf     *ExtInf
	pendingDiscont    bool
	pendingByteRange  *ByteRange

	lastByteRangeURI   string
	lastByteRangeValue *ByteRange

	activeKey *Key
	activeMap *Map

	pdtAnchor *time.Time
	pdtAccum  float64
	hasDate   bool

	mediaSequenceSet bool
	nextSegmentIndex uint64
}

// Base implements TagHandlerSource.
func (b *BaseParser) Base() *BaseParser { return b }

// Parser is the default concrete parser type, exposing only the built-in
// RFC 8216 tag set. Embed it (or BaseParser directly) in a subtype to add
// site-specific handlers; see TagHandlerSource and HandlerSpec.
type Parser struct {
	BaseParser
}

// NewParser constructs the default parser.
func NewParser() *Parser { return &Parser{} }

// TagHandlers returns the built-in tag handler table. A subtype overrides
// by declaring its own TagHandlers method; see TagHandlerSource.
func (b *BaseParser) TagHandlers() []HandlerSpec { return builtinHandlers }

// split_tag: splits a "#EXT-..." line into its tag name and the raw
// attribute/value string following the colon (empty for a valueless tag).
// Exposed on BaseParser as part of the extension surface (§6).
func (b *BaseParser) SplitTag(line string) (name string, attrs string) {
	name, attrs, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return name, attrs
}

// ParseAttributes is part of the extension surface: a stateless wrapper
// around the package-level attribute-list grammar, so subtype handlers
// written as methods can call b.ParseAttributes the same way they'd call
// any other primitive.
func (b *BaseParser) ParseAttributes(s string) (map[string]string, bool) {
	return ParseAttributes(s)
}

// resolve resolves ref against this parse's base_uri.
func (b *BaseParser) resolve(ref string) string {
	return resolveURI(b.base, ref)
}

// Parse drives newParser() over content, resolving URIs against baseURI,
// and returns the finalised Playlist. It is the Go-native analogue of
// parse(content, base_uri, parser_class) from spec.md §4.6: Go has no
// runtime "class" value, so newParser plays that role — a zero-argument
// constructor for the concrete parser type, e.g. m3u8.NewParser or a
// subtype's own constructor.
//
// Parse never returns an error for malformed *data*; it returns an error
// only when the #EXTM3U preamble precondition fails (*MalformedPlaylistError).
func Parse(content, baseURI string, newParser func() TagHandlerSource) (*Playlist, error) {
	src := newParser()
	reg := registryFor(src)
	b := src.Base()

	b.playlist = &Playlist{URI: baseURI, Version: 1}
	if u, err := url.Parse(baseURI); err == nil {
		b.base = u
	}

	content = strings.TrimPrefix(content, "\xef\xbb\xbf")

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	sawFirstNonBlank := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !sawFirstNonBlank {
			sawFirstNonBlank = true
			if trimmed != TagM3U {
				return nil, &MalformedPlaylistError{Reason: "first line is not " + TagM3U}
			}
			b.preambleOK = true
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#EXT"):
			name, attrs := b.SplitTag(trimmed)
			if fn, known := reg.lookup(name); known {
				if err := fn(b, attrs); err != nil {
					return nil, err
				}
			}

		case strings.HasPrefix(trimmed, "#"):
			// comment line, ignore
			continue

		default:
			// URI line
			b.commitURILine(trimmed)
		}
	}

	return b.finish(), nil
}

// ParseDefault is a convenience wrapper around Parse using the default
// Parser (built-in tag set only).
func ParseDefault(content, baseURI string) (*Playlist, error) {
	return Parse(content, baseURI, func() TagHandlerSource { return NewParser() })
}

// commitURILine implements the URI-line branch of §4.4's per-line
// classification.
func (b *BaseParser) commitURILine(raw string) {
	resolved := b.resolve(raw)

	if b.pendingStreamInfo != nil {
		b.playlist.Playlists = append(b.playlist.Playlists, VariantPlaylist{
			URI:        resolved,
			StreamInfo: *b.pendingStreamInfo,
		})
		b.pendingStreamInfo = nil
		return
	}

	if b.pendingExtInf == nil {
		b.warn(WarnStrayURI)
		return
	}

	seg := Segment{
		URI: resolved,
		Num: b.playlist.MediaSequence + b.nextSegmentIndex,
	}
	b.nextSegmentIndex++

	if b.pendingExtInf != nil {
		seg.Duration = b.pendingExtInf.Duration
		seg.Title = b.pendingExtInf.Title
		b.pendingExtInf = nil
	}

	seg.Discontinuity = b.pendingDiscont
	b.pendingDiscont = false

	if b.pendingByteRange != nil {
		br := *b.pendingByteRange
		if br.Offset == nil {
			var offset uint64
			switch {
			case b.lastByteRangeValue != nil && b.lastByteRangeURI == resolved:
				offset = *b.lastByteRangeValue.Offset + b.lastByteRangeValue.Length
			case b.lastByteRangeValue != nil:
				// An offset-less BYTERANGE following one against a different
				// URI can't continue it; reset to 0 and say so. The very
				// first BYTERANGE in the playlist has nothing to continue
				// from and resets silently.
				b.warn(WarnByteRangeContinuation)
			}
			br.Offset = &offset
		}
		seg.ByteRange = &br
		b.lastByteRangeURI = resolved
		b.lastByteRangeValue = &br
		b.pendingByteRange = nil
	}

	seg.Key = b.activeKey
	seg.Map = b.activeMap

	if b.hasDate {
		d := b.pdtAnchor.Add(time.Duration(b.pdtAccum * float64(time.Second)))
		seg.Date = &d
		b.pdtAccum += seg.Duration
	}

	b.playlist.Segments = append(b.playlist.Segments, seg)
}

// finish assembles the final, immutable Playlist value.
func (b *BaseParser) finish() *Playlist {
	if b.sawStreamInf && b.sawExtInf {
		b.warn(WarnMixedPlaylistType)
	}
	b.playlist.IsMaster = b.sawStreamInf
	return b.playlist
}
