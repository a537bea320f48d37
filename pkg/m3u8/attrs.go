package m3u8

import "strings"

// ParseAttributes tokenises an HLS attribute list:
//
//	attrlist   := (attr ("," attr)*)?
//	attr       := SP* NAME "=" VALUE SP*
//	NAME       := [A-Z0-9][A-Z0-9-]*
//	QUOTED     := '"' [^"\r\n]* '"'
//	TOKEN      := [^,"\r\n]+
//
// Leading/trailing whitespace around a NAME or VALUE (and around the comma
// separating attrs) is tolerated as an off-spec accommodation for
// real-world feeds; whitespace directly between NAME and "=", or between
// "=" and VALUE, is not — that fails the whole list. A failed parse of any
// single attribute discards the entire list: ParseAttributes returns an
// empty map and ok=false, and the caller should emit
// WarnDiscardedAttributeList exactly once. An empty input list is valid
// (returns an empty map, ok=true, no warning). Duplicate names keep the
// last occurrence.
func ParseAttributes(s string) (attrs map[string]string, ok bool) {
	result := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return result, true
	}

	rest := s
	for {
		rest = strings.TrimLeft(rest, " \t")
		name, after, ok := scanName(rest)
		if !ok {
			return map[string]string{}, false
		}
		if !strings.HasPrefix(after, "=") {
			return map[string]string{}, false
		}
		after = after[1:]
		value, after, ok := scanValue(after)
		if !ok {
			return map[string]string{}, false
		}
		result[name] = value

		after = strings.TrimLeft(after, " \t")
		if after == "" {
			break
		}
		if after[0] != ',' {
			return map[string]string{}, false
		}
		rest = after[1:]
	}
	return result, true
}

// scanName consumes NAME := [A-Z0-9][A-Z0-9-]* with no leading whitespace
// tolerance of its own (callers trim before calling), and no whitespace
// permitted between the name and the following "=".
func scanName(s string) (name string, rest string, ok bool) {
	i := 0
	for i < len(s) && isNameChar(s[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

func isNameChar(b byte, first bool) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	if b == '-' {
		return !first
	}
	return false
}

// scanValue consumes either a quoted string or a bare token, with no
// whitespace permitted immediately before the value (callers must not have
// trimmed past the "=").
func scanValue(s string) (value string, rest string, ok bool) {
	if s == "" {
		return "", s, false
	}
	if s[0] == ' ' || s[0] == '\t' {
		return "", s, false
	}
	if s[0] == '"' {
		end := strings.IndexAny(s[1:], "\"\r\n")
		if end == -1 || s[1+end] != '"' {
			return "", s, false
		}
		return s[1 : 1+end], s[1+end+1:], true
	}
	end := strings.IndexAny(s, ",\"\r\n")
	if end == -1 {
		end = len(s)
	}
	value = s[:end]
	value = strings.TrimRight(value, " \t")
	if value == "" {
		return "", s, false
	}
	return value, s[end:], true
}
