// Cache key generation
//
// Proxied content is keyed off the resolved origin URL plus the caller's
// token, not the raw inbound proxy request: two different origin URLs can't
// reuse a key regardless of how the request arrived, and the same origin
// URL requested with different tokens gets different keys.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key represents a cache key.
type Key string

// FromString creates a cache key from a string.
func FromString(s string) Key {
	return Key(s)
}

// FromURL creates a cache key from a URL alone, with no per-viewer
// component, for content that doesn't vary by token. ForOrigin does not
// use it: its keys carry no "url:" prefix.
func FromURL(url string) Key {
	return Key("url:" + url)
}

// ForOrigin builds a cache key for proxied origin content: the resolved
// origin URL plus the caller's token, since rewritten playlist URIs differ
// per token (the proxy path each variant points back to embeds it) and a
// shared cache must not hand one viewer's rewritten playlist to another.
func ForOrigin(targetURL, token string, opts ...KeyOption) Key {
	options := defaultKeyOptions()
	for _, opt := range opts {
		opt(&options)
	}

	key := targetURL
	if token != "" {
		key += "|" + token
	}
	key = options.prefix + key

	if options.hash {
		return hashKey(key)
	}
	return Key(key)
}

// KeyOption configures key generation.
type KeyOption func(*keyOptions)

type keyOptions struct {
	prefix string
	hash   bool
}

func defaultKeyOptions() keyOptions {
	return keyOptions{prefix: "cache:"}
}

// WithPrefix adds a prefix to the key, used to separate playlist keys from
// segment keys in the same cache instance.
func WithPrefix(prefix string) KeyOption {
	return func(o *keyOptions) {
		o.prefix = prefix
	}
}

// WithHash hashes the key, bounding key length for very long origin URLs
// with large query strings.
func WithHash() KeyOption {
	return func(o *keyOptions) {
		o.hash = true
	}
}

// hashKey hashes a key string.
func hashKey(key string) Key {
	hash := sha256.Sum256([]byte(key))
	return Key(hex.EncodeToString(hash[:]))
}
