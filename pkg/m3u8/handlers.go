package m3u8

import (
	"strings"
	"time"
)

// builtinHandlers is the RFC 8216 tag set BaseParser declares itself. A
// subtype's TagHandlers typically starts from b.BaseParser.TagHandlers()
// (which returns this slice) and appends to or overrides it.
var builtinHandlers = []HandlerSpec{
	{Names: []string{TagM3U}, Doc: "marker only", Fn: handleM3U},
	{Names: []string{TagVersion}, Doc: "sets playlist.Version", Fn: handleVersion},
	{Names: []string{TagTargetDuration}, Fn: handleTargetDuration},
	{Names: []string{TagMediaSequence}, Fn: handleMediaSequence},
	{Names: []string{TagDiscontinuitySequence}, Fn: handleDiscontinuitySequence},
	{Names: []string{TagEndList}, Fn: handleEndList},
	{Names: []string{TagPlaylistType}, Fn: handlePlaylistType},
	{Names: []string{TagIFramesOnly}, Fn: handleIFramesOnly},
	{Names: []string{TagAllowCache}, Fn: handleAllowCache},
	{Names: []string{TagStart}, Fn: handleStart},
	{Names: []string{TagInf}, Fn: handleExtInf},
	{Names: []string{TagByteRange}, Fn: handleByteRange},
	{Names: []string{TagDiscontinuity}, Fn: handleDiscontinuity},
	{Names: []string{TagKey}, Fn: handleKey},
	{Names: []string{TagMap}, Fn: handleMap},
	{Names: []string{TagProgramDateTime}, Fn: handleProgramDateTime},
	{Names: []string{TagDateRange}, Fn: handleDateRange},
	{Names: []string{TagMedia}, Fn: handleMedia},
	{Names: []string{TagStreamInf}, Fn: handleStreamInf},
	{Names: []string{TagIFrameStreamInf}, Fn: handleIFrameStreamInf},
	{Names: []string{TagIndependentSegments}, Fn: handleIndependentSegments},
}

func handleM3U(b *BaseParser, attrs string) error { return nil }

func handleVersion(b *BaseParser, attrs string) error {
	if v, ok := ParseUint(attrs); ok {
		b.playlist.Version = uint(v)
	}
	return nil
}

func handleTargetDuration(b *BaseParser, attrs string) error {
	if v, ok := ParseUint(attrs); ok {
		td := uint(v)
		b.playlist.TargetDuration = &td
	}
	return nil
}

func handleMediaSequence(b *BaseParser, attrs string) error {
	v, ok := ParseUint(attrs)
	if !ok {
		return nil
	}
	if b.nextSegmentIndex > 0 {
		b.warn(WarnLateMediaSequence)
	}
	b.playlist.MediaSequence = v
	b.mediaSequenceSet = true
	return nil
}

func handleDiscontinuitySequence(b *BaseParser, attrs string) error {
	if v, ok := ParseUint(attrs); ok {
		b.playlist.DiscontinuitySequence = v
	}
	return nil
}

func handleEndList(b *BaseParser, attrs string) error {
	b.playlist.IsEndlist = true
	return nil
}

func handlePlaylistType(b *BaseParser, attrs string) error {
	switch strings.TrimSpace(attrs) {
	case string(PlaylistTypeVOD):
		b.playlist.PlaylistType = PlaylistTypeVOD
	case string(PlaylistTypeEvent):
		b.playlist.PlaylistType = PlaylistTypeEvent
	}
	return nil
}

func handleIFramesOnly(b *BaseParser, attrs string) error {
	b.playlist.IFramesOnly = true
	return nil
}

func handleAllowCache(b *BaseParser, attrs string) error {
	v := ParseYesNo(strings.TrimSpace(attrs))
	b.playlist.AllowCache = &v
	return nil
}

func handleStart(b *BaseParser, attrs string) error {
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}
	offset, _ := ParseFloat(fields[AttrTimeOffset])
	b.playlist.Start = &StartPoint{
		TimeOffset: offset,
		Precise:    ParseYesNo(fields[AttrPrecise]),
	}
	return nil
}

func handleExtInf(b *BaseParser, attrs string) error {
	b.sawExtInf = true
	v := ParseExtInf(attrs)
	b.pendingExtInf = &v
	return nil
}

func handleByteRange(b *BaseParser, attrs string) error {
	br, ok := ParseByteRange(strings.TrimSpace(attrs))
	if !ok {
		return nil
	}
	b.pendingByteRange = br
	return nil
}

func handleDiscontinuity(b *BaseParser, attrs string) error {
	b.pendingDiscont = true
	return nil
}

func handleKey(b *BaseParser, attrs string) error {
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}

	method := KeyMethod(fields[AttrMethod])
	if method == "" {
		method = KeyMethodNone
	}

	if method == KeyMethodNone {
		b.activeKey = nil
		b.playlist.Keys = append(b.playlist.Keys, Key{Method: KeyMethodNone})
		return nil
	}

	k := Key{
		Method:            method,
		KeyFormat:         fields[AttrKeyFormat],
		KeyFormatVersions: fields[AttrKeyFormatVersions],
	}
	if uri, ok := fields[AttrURI]; ok {
		k.URI = b.resolve(uri)
	} else {
		b.warn(WarnUnknownKeyURI)
	}
	if ivRaw, ok := fields[AttrIV]; ok {
		iv, ok := ParseHex(ivRaw)
		if !ok {
			b.warn(WarnDiscardedHex)
		} else {
			k.IV = iv
		}
	}

	b.activeKey = &k
	b.playlist.Keys = append(b.playlist.Keys, k)
	return nil
}

func handleMap(b *BaseParser, attrs string) error {
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}
	m := &Map{URI: b.resolve(fields[AttrURI])}
	if brRaw, ok := fields[AttrByteRange]; ok {
		if br, ok := ParseByteRange(brRaw); ok {
			m.ByteRange = br
		}
	}
	b.activeMap = m
	return nil
}

func handleProgramDateTime(b *BaseParser, attrs string) error {
	t, ok := ParseISO8601(strings.TrimSpace(attrs))
	if !ok {
		b.warn(WarnDiscardedISO8601)
		return nil
	}
	b.pdtAnchor = &t
	b.pdtAccum = 0
	b.hasDate = true
	return nil
}

func handleDateRange(b *BaseParser, attrs string) error {
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}

	dr := DateRange{
		ID:    fields[AttrID],
		Class: fields[AttrClass],
		X:     make(map[string]string),
	}
	if raw, ok := fields[AttrStartDate]; ok {
		if t, ok := ParseISO8601(raw); ok {
			dr.StartDate = &t
		} else {
			b.warn(WarnDiscardedISO8601)
		}
	}
	if raw, ok := fields[AttrEndDate]; ok {
		if t, ok := ParseISO8601(raw); ok {
			dr.EndDate = &t
		} else {
			b.warn(WarnDiscardedISO8601)
		}
	}
	if raw, ok := fields[AttrDuration]; ok {
		if f, ok := ParseFloat(raw); ok {
			d := floatSecondsToDuration(f)
			dr.Duration = &d
		}
	}
	if raw, ok := fields[AttrPlannedDuration]; ok {
		if f, ok := ParseFloat(raw); ok {
			d := floatSecondsToDuration(f)
			dr.PlannedDuration = &d
		}
	}
	dr.EndOnNext = ParseYesNo(fields[AttrEndOnNext])

	for name, value := range fields {
		if strings.HasPrefix(name, "X-") {
			dr.X[name] = value
		}
	}

	b.playlist.DateRanges = append(b.playlist.DateRanges, dr)
	return nil
}

func handleMedia(b *BaseParser, attrs string) error {
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}

	m := Media{
		Type:            MediaType(fields[AttrType]),
		GroupID:         fields[AttrGroupID],
		Language:        fields[AttrLanguage],
		Name:            fields[AttrName],
		Default:         ParseYesNo(fields[AttrDefault]),
		Autoselect:      ParseYesNo(fields[AttrAutoselect]),
		Forced:          ParseYesNo(fields[AttrForced]),
		Characteristics: fields[AttrCharacteristics],
	}
	if uri, ok := fields[AttrURI]; ok {
		m.URI = b.resolve(uri)
	}

	b.playlist.Media = append(b.playlist.Media, m)
	return nil
}

func handleStreamInf(b *BaseParser, attrs string) error {
	b.sawStreamInf = true
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		b.pendingStreamInfo = &StreamInfo{}
		return nil
	}
	si := streamInfoFromAttrs(fields)
	b.pendingStreamInfo = &si
	return nil
}

func handleIFrameStreamInf(b *BaseParser, attrs string) error {
	b.sawStreamInf = true
	fields, ok := ParseAttributes(attrs)
	if !ok {
		b.warn(WarnDiscardedAttributeList)
		return nil
	}
	si := streamInfoFromAttrs(fields)
	b.playlist.Playlists = append(b.playlist.Playlists, VariantPlaylist{
		URI:        b.resolve(fields[AttrURI]),
		StreamInfo: si,
		IsIFrame:   true,
	})
	return nil
}

func handleIndependentSegments(b *BaseParser, attrs string) error {
	b.playlist.IndependentSegments = true
	return nil
}

func streamInfoFromAttrs(fields map[string]string) StreamInfo {
	si := StreamInfo{
		ProgramID: fields[AttrProgramID],
		Audio:     fields[AttrAudio],
		Video:     fields[AttrVideo],
		Subtitles: fields[AttrSubtitles],
	}
	si.Bandwidth, _ = ParseUint(fields[AttrBandwidth])
	if codecs, ok := fields[AttrCodecs]; ok && codecs != "" {
		si.Codecs = strings.Split(codecs, ",")
	}
	if res, ok := fields[AttrResolution]; ok {
		si.Resolution = ParseResolution(res)
	}
	return si
}

func floatSecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
