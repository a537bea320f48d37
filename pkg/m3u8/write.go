package m3u8

import (
	"strconv"
	"strings"
)

// Write renders a Playlist back to M3U8 text. It does not reproduce the
// original document byte-for-byte: comments, tag ordering within a single
// URI's decorator run, and any attribute the model doesn't retain (e.g.
// whitespace inside an original attribute list) are lost. Key and map
// changes are also not fully round-tripped: an EXT-X-KEY is emitted only
// when a segment's key URI or METHOD differs from the previous segment's
// (an IV-only change is not written), a segment whose key was cleared by
// METHOD=NONE gets no EXT-X-KEY line, and an EXT-X-MAP is emitted only
// when the map URI changes.
func Write(p *Playlist) string {
	var b strings.Builder
	b.WriteString(TagM3U)
	b.WriteByte('\n')

	if p.Version > 0 {
		writeValueTag(&b, TagVersion, strconv.FormatUint(uint64(p.Version), 10))
	}
	if p.IndependentSegments {
		b.WriteString(TagIndependentSegments)
		b.WriteByte('\n')
	}
	if p.Start != nil {
		writeAttrTag(&b, TagStart, formatAttrs([][2]string{
			{AttrTimeOffset, formatFloat(p.Start.TimeOffset)},
			{AttrPrecise, formatYesNo(p.Start.Precise)},
		}))
	}

	if p.IsMaster {
		writeMaster(&b, p)
	} else {
		writeMedia(&b, p)
	}

	return b.String()
}

func writeMaster(b *strings.Builder, p *Playlist) {
	for _, m := range p.Media {
		attrs := [][2]string{
			{AttrType, string(m.Type)},
			{AttrGroupID, quote(m.GroupID)},
			{AttrName, quote(m.Name)},
		}
		if m.Language != "" {
			attrs = append(attrs, [2]string{AttrLanguage, quote(m.Language)})
		}
		attrs = append(attrs,
			[2]string{AttrDefault, formatYesNo(m.Default)},
			[2]string{AttrAutoselect, formatYesNo(m.Autoselect)},
		)
		if m.Forced {
			attrs = append(attrs, [2]string{AttrForced, formatYesNo(m.Forced)})
		}
		if m.Characteristics != "" {
			attrs = append(attrs, [2]string{AttrCharacteristics, quote(m.Characteristics)})
		}
		if m.URI != "" {
			attrs = append(attrs, [2]string{AttrURI, quote(m.URI)})
		}
		writeAttrTag(b, TagMedia, formatAttrs(attrs))
	}

	for _, v := range p.Playlists {
		attrs := streamInfoAttrs(v.StreamInfo)
		if v.IsIFrame {
			attrs = append(attrs, [2]string{AttrURI, quote(v.URI)})
			writeAttrTag(b, TagIFrameStreamInf, formatAttrs(attrs))
			continue
		}
		writeAttrTag(b, TagStreamInf, formatAttrs(attrs))
		b.WriteString(v.URI)
		b.WriteByte('\n')
	}
}

func streamInfoAttrs(si StreamInfo) [][2]string {
	attrs := [][2]string{{AttrBandwidth, strconv.FormatUint(si.Bandwidth, 10)}}
	if si.ProgramID != "" {
		attrs = append(attrs, [2]string{AttrProgramID, si.ProgramID})
	}
	if len(si.Codecs) > 0 {
		attrs = append(attrs, [2]string{AttrCodecs, quote(strings.Join(si.Codecs, ","))})
	}
	if si.Resolution.Width > 0 && si.Resolution.Height > 0 {
		attrs = append(attrs, [2]string{AttrResolution, strconv.FormatUint(uint64(si.Resolution.Width), 10) + "x" + strconv.FormatUint(uint64(si.Resolution.Height), 10)})
	}
	if si.Audio != "" {
		attrs = append(attrs, [2]string{AttrAudio, quote(si.Audio)})
	}
	if si.Video != "" {
		attrs = append(attrs, [2]string{AttrVideo, quote(si.Video)})
	}
	if si.Subtitles != "" {
		attrs = append(attrs, [2]string{AttrSubtitles, quote(si.Subtitles)})
	}
	return attrs
}

func writeMedia(b *strings.Builder, p *Playlist) {
	if p.TargetDuration != nil {
		writeValueTag(b, TagTargetDuration, strconv.FormatUint(uint64(*p.TargetDuration), 10))
	}
	writeValueTag(b, TagMediaSequence, strconv.FormatUint(p.MediaSequence, 10))
	if p.DiscontinuitySequence > 0 {
		writeValueTag(b, TagDiscontinuitySequence, strconv.FormatUint(p.DiscontinuitySequence, 10))
	}
	if p.PlaylistType != PlaylistTypeNone {
		writeValueTag(b, TagPlaylistType, string(p.PlaylistType))
	}
	if p.IFramesOnly {
		b.WriteString(TagIFramesOnly)
		b.WriteByte('\n')
	}
	if p.AllowCache != nil {
		writeValueTag(b, TagAllowCache, formatYesNo(*p.AllowCache))
	}

	for _, dr := range p.DateRanges {
		writeAttrTag(b, TagDateRange, formatAttrs(dateRangeAttrs(dr)))
	}

	var lastKey *Key
	var lastMap *Map
	for _, seg := range p.Segments {
		if seg.Discontinuity {
			b.WriteString(TagDiscontinuity)
			b.WriteByte('\n')
		}
		if seg.Date != nil {
			writeValueTag(b, TagProgramDateTime, seg.Date.Format("2006-01-02T15:04:05.000Z07:00"))
		}
		if seg.Key != nil && (lastKey == nil || seg.Key.URI != lastKey.URI || seg.Key.Method != lastKey.Method) {
			writeAttrTag(b, TagKey, formatAttrs(keyAttrs(*seg.Key)))
			lastKey = seg.Key
		}
		if seg.Map != nil && (lastMap == nil || seg.Map.URI != lastMap.URI) {
			attrs := [][2]string{{AttrURI, quote(seg.Map.URI)}}
			if seg.Map.ByteRange != nil {
				attrs = append(attrs, [2]string{AttrByteRange, formatByteRange(seg.Map.ByteRange)})
			}
			writeAttrTag(b, TagMap, formatAttrs(attrs))
			lastMap = seg.Map
		}
		if seg.ByteRange != nil {
			writeValueTag(b, TagByteRange, formatByteRange(seg.ByteRange))
		}
		writeValueTag(b, TagInf, formatFloat(seg.Duration)+","+seg.Title)
		b.WriteString(seg.URI)
		b.WriteByte('\n')
	}

	if p.IsEndlist {
		b.WriteString(TagEndList)
		b.WriteByte('\n')
	}
}

func keyAttrs(k Key) [][2]string {
	attrs := [][2]string{{AttrMethod, string(k.Method)}}
	if k.URI != "" {
		attrs = append(attrs, [2]string{AttrURI, quote(k.URI)})
	}
	if len(k.IV) > 0 {
		attrs = append(attrs, [2]string{AttrIV, "0x" + hexEncode(k.IV)})
	}
	if k.KeyFormat != "" {
		attrs = append(attrs, [2]string{AttrKeyFormat, quote(k.KeyFormat)})
	}
	if k.KeyFormatVersions != "" {
		attrs = append(attrs, [2]string{AttrKeyFormatVersions, quote(k.KeyFormatVersions)})
	}
	return attrs
}

func dateRangeAttrs(dr DateRange) [][2]string {
	attrs := [][2]string{{AttrID, quote(dr.ID)}}
	if dr.Class != "" {
		attrs = append(attrs, [2]string{AttrClass, quote(dr.Class)})
	}
	if dr.StartDate != nil {
		attrs = append(attrs, [2]string{AttrStartDate, quote(dr.StartDate.Format("2006-01-02T15:04:05.000Z07:00"))})
	}
	if dr.EndDate != nil {
		attrs = append(attrs, [2]string{AttrEndDate, quote(dr.EndDate.Format("2006-01-02T15:04:05.000Z07:00"))})
	}
	if dr.Duration != nil {
		attrs = append(attrs, [2]string{AttrDuration, formatFloat(dr.Duration.Seconds())})
	}
	if dr.PlannedDuration != nil {
		attrs = append(attrs, [2]string{AttrPlannedDuration, formatFloat(dr.PlannedDuration.Seconds())})
	}
	if dr.EndOnNext {
		attrs = append(attrs, [2]string{AttrEndOnNext, formatYesNo(true)})
	}
	for name, value := range dr.X {
		attrs = append(attrs, [2]string{name, quote(value)})
	}
	return attrs
}

func writeValueTag(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteByte('\n')
}

func writeAttrTag(b *strings.Builder, name, attrs string) {
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(attrs)
	b.WriteByte('\n')
}

func formatAttrs(pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p[0]+"="+p[1])
	}
	return strings.Join(parts, ",")
}

func quote(s string) string {
	return `"` + s + `"`
}

func formatYesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatByteRange(br *ByteRange) string {
	s := strconv.FormatUint(br.Length, 10)
	if br.Offset != nil {
		s += "@" + strconv.FormatUint(*br.Offset, 10)
	}
	return s
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0x0f]
	}
	return string(out)
}
