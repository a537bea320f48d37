package m3u8

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ParseYesNo decodes an attribute-list boolean token: "YES" is true,
// anything else (including an empty string) is false.
func ParseYesNo(s string) bool {
	return s == "YES"
}

// ParseUint decodes a decimal, non-negative integer. On failure it returns
// (0, false); callers substitute whatever default their field contract
// calls for.
func ParseUint(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat decodes a signed decimal float (optional sign, digits,
// optional fractional part). On failure it returns (0, false).
func ParseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseHex decodes a "0x"/"0X"-prefixed hexadecimal byte string, as used by
// the IV attribute of EXT-X-KEY. An odd number of nibbles is left-padded
// with a zero nibble before decoding, matching common encoder output. On
// failure it returns (nil, false) and the caller should emit
// WarnDiscardedHex.
func ParseHex(s string) ([]byte, bool) {
	if len(s) < 3 {
		return nil, false
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return nil, false
	}
	digits := s[2:]
	if digits == "" {
		return nil, false
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return nil, false
		}
	}
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, false
	}
	return b, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// iso8601Layouts covers the accepted subset of ISO-8601: a full date and
// time, with fractional seconds optional, and a required timezone (either
// "Z" or a numeric offset).
var iso8601Layouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
}

// ParseISO8601 decodes a full date+time ISO-8601 timestamp with a required
// timezone. A date-only value, or one missing a timezone, fails. On
// failure it returns (zero, false) and the caller should emit
// WarnDiscardedISO8601.
func ParseISO8601(s string) (time.Time, bool) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseResolution decodes a "<width>x<height>" attribute value. On failure
// it returns the domain default, Resolution{0, 0}.
func ParseResolution(s string) Resolution {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Resolution{}
	}
	width, okW := ParseUint(w)
	height, okH := ParseUint(h)
	if !okW || !okH {
		return Resolution{}
	}
	return Resolution{Width: uint(width), Height: uint(height)}
}

// ParseByteRange decodes "<length>" or "<length>@<offset>". On failure it
// returns (nil, false).
func ParseByteRange(s string) (*ByteRange, bool) {
	if s == "" {
		return nil, false
	}
	lengthPart, offsetPart, hasOffset := strings.Cut(s, "@")
	length, ok := ParseUint(lengthPart)
	if !ok {
		return nil, false
	}
	br := &ByteRange{Length: length}
	if hasOffset {
		offset, ok := ParseUint(offsetPart)
		if !ok {
			return nil, false
		}
		br.Offset = &offset
	}
	return br, true
}

// ParseExtInf decodes "<duration>[,<title>]". An empty or invalid duration
// yields ExtInf{0, ""}.
func ParseExtInf(s string) ExtInf {
	durPart, title, _ := strings.Cut(s, ",")
	duration, ok := ParseFloat(durPart)
	if !ok {
		return ExtInf{}
	}
	return ExtInf{Duration: duration, Title: title}
}
