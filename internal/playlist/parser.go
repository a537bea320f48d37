// HLS playlist parsing
//
// Thin orchestration around pkg/m3u8: parse an origin response body,
// rewrite its URIs to route back through the proxy, and re-serialize it
// to bytes ready to serve.

package playlist

import (
	"fmt"
	"io"
	"net/url"

	"github.com/streamforge/hlsplaylist/pkg/m3u8"
)

// Parser drives pkg/m3u8 for the proxy service.
type Parser struct{}

// NewParser creates a new playlist parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseAndProcessResponse parses the M3U8 document read from r (as fetched
// from targetURL), rewrites its URIs to route through proxyURL carrying
// token, and renders the result back to M3U8 text.
func (p *Parser) ParseAndProcessResponse(r io.Reader, targetURL, proxyURL *url.URL, token string, opts ProcessorOptions) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading origin response: %w", err)
	}

	pl, err := m3u8.ParseDefault(string(content), targetURL.String())
	if err != nil {
		return nil, fmt.Errorf("parsing playlist: %w", err)
	}

	modifier := NewModifier(opts)
	if err := modifier.Process(pl, targetURL, proxyURL, token); err != nil {
		return nil, fmt.Errorf("rewriting playlist: %w", err)
	}

	return []byte(m3u8.Write(pl)), nil
}
