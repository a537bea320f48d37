// Package m3u8 parses HLS (HTTP Live Streaming) M3U8 playlists — both
// master (multivariant) and media playlists — into a typed, validated
// in-memory representation as described in RFC 8216.
//
// The parser is a single forward pass over the document: it classifies
// each line, dispatches tag lines to handlers through a per-type registry,
// and resolves every URI against the base_uri supplied to Parse. Malformed
// attribute values are recovered from with a warning rather than aborting
// the parse; only a missing #EXTM3U preamble is fatal.
//
// Subtypes extend the tag set by embedding BaseParser and implementing
// TagHandlers to declare additional (or overriding) handlers; see
// TagHandlerSource and HandlerSpec.
package m3u8
