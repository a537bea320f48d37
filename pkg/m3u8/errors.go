package m3u8

import "errors"

// MalformedPlaylistError is the only fatal error Parse returns: the
// document failed the single unrecoverable precondition, a missing or
// wrong #EXTM3U preamble.
type MalformedPlaylistError struct {
	Reason string
}

func (e *MalformedPlaylistError) Error() string {
	return "malformed playlist: " + e.Reason
}

// ErrMissingPreamble is wrapped by MalformedPlaylistError when the first
// non-blank line of the document is not exactly "#EXTM3U".
var ErrMissingPreamble = errors.New("first line is not #EXTM3U")
