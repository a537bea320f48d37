// Playlist debug endpoints
//
// GET /playlist?url=<origin>      -- fetch, parse, rewrite, return M3U8 text
// GET /playlist.json?url=<origin> -- same, but return the parsed Playlist as JSON

package api

import (
	"fmt"
	"net/http"

	"github.com/streamforge/hlsplaylist/pkg/m3u8"
)

// Fetcher fetches raw content for a URL, used instead of importing the
// proxy's origin client directly to keep internal/api free of a
// dependency on internal/proxy.
type Fetcher func(r *http.Request, targetURL string) ([]byte, error)

// PlaylistHandler returns a handler serving the rewritten M3U8 text of the
// playlist at ?url=.
func PlaylistHandler(fetch Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetURL := r.URL.Query().Get("url")
		if targetURL == "" {
			WriteError(w, NewError("missing url parameter", "missing_url", http.StatusBadRequest))
			return
		}

		content, err := fetch(r, targetURL)
		if err != nil {
			WriteError(w, NewError(fmt.Sprintf("fetching origin: %v", err), "fetch_failed", http.StatusBadGateway))
			return
		}

		pl, err := m3u8.ParseDefault(string(content), targetURL)
		if err != nil {
			WriteError(w, NewError(fmt.Sprintf("parsing playlist: %v", err), "parse_failed", http.StatusBadGateway))
			return
		}

		out := []byte(m3u8.Write(pl))
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		w.Write(out)
	}
}

// PlaylistJSONHandler returns a handler serving the parsed Playlist as
// JSON, exercising the data model directly for debugging/tests.
func PlaylistJSONHandler(fetch Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetURL := r.URL.Query().Get("url")
		if targetURL == "" {
			WriteError(w, NewError("missing url parameter", "missing_url", http.StatusBadRequest))
			return
		}

		content, err := fetch(r, targetURL)
		if err != nil {
			WriteError(w, NewError(fmt.Sprintf("fetching origin: %v", err), "fetch_failed", http.StatusBadGateway))
			return
		}

		pl, err := m3u8.ParseDefault(string(content), targetURL)
		if err != nil {
			WriteError(w, NewError(fmt.Sprintf("parsing playlist: %v", err), "parse_failed", http.StatusBadGateway))
			return
		}

		WriteJSON(w, http.StatusOK, pl)
	}
}
