package m3u8

import (
	"reflect"
	"sync"
)

// HandlerFunc handles one tag occurrence. attrs is the substring of the
// tag line after the colon (or "" for a valueless tag like EXT-X-ENDLIST);
// the handler mutates the parser's in-progress state through b.
type HandlerFunc func(b *BaseParser, attrs string) error

// HandlerSpec declares one or more tag names handled by Fn, plus an
// optional documentation string. A single Fn may be registered under
// several Names (rare, but nothing forbids e.g. an alias tag).
type HandlerSpec struct {
	Names []string
	Doc   string
	Fn    HandlerFunc
}

// TagHandlerSource is implemented by every concrete parser type. BaseParser
// implements it with the built-in RFC 8216 tag set; a subtype overrides or
// extends the set by embedding BaseParser (directly or via Parser) and
// declaring its own TagHandlers method, explicitly folding in the
// embedded type's handlers:
//
//	func (c *CustomParser) TagHandlers() []m3u8.HandlerSpec {
//	        return append(c.BaseParser.TagHandlers(), m3u8.HandlerSpec{
//	                Names: []string{"#EXT-X-FOO-BAR"},
//	                Fn:    handleFooBar,
//	        })
//	}
//
// This is the "explicit registration" strategy: the framework cannot
// recover per-method tag-name metadata from Go's method set via plain
// reflection (there are no method annotations), so the contract is
// satisfied by each type declaratively listing its own handlers and
// choosing whether to carry the parent's forward.
type TagHandlerSource interface {
	TagHandlers() []HandlerSpec
	// Base returns the shared mutable parse state every handler operates
	// on, regardless of how deep the type is embedded.
	Base() *BaseParser
}

// registry is the immutable, cached {tag name -> handler} map for one
// concrete parser type.
type registry struct {
	handlers map[string]HandlerSpec
}

var (
	registryCache   sync.Map // reflect.Type -> *registry
	registryBuildMu sync.Mutex
)

// registryFor returns the cached registry for src's concrete type,
// building it on first use. Construction is idempotent and safe under
// concurrent first use: a double-checked load around a single build mutex
// ensures only one goroutine builds any given type's registry, and every
// caller — including concurrent ones — observes the same *registry
// pointer once published.
//
// Building never mutates a previously-published registry: each type gets
// its own freshly-allocated map, so a subtype overriding a tag can never
// reach back and change what the parent type's registry resolves to.
func registryFor(src TagHandlerSource) *registry {
	t := reflect.TypeOf(src)
	if v, ok := registryCache.Load(t); ok {
		return v.(*registry)
	}

	registryBuildMu.Lock()
	defer registryBuildMu.Unlock()
	if v, ok := registryCache.Load(t); ok {
		return v.(*registry)
	}

	handlers := make(map[string]HandlerSpec)
	for _, spec := range src.TagHandlers() {
		for _, name := range spec.Names {
			handlers[name] = spec
		}
	}
	reg := &registry{handlers: handlers}
	registryCache.Store(t, reg)
	return reg
}

// lookup returns the handler registered for name, if any. Unknown tags are
// not an error: the caller silently ignores them.
func (r *registry) lookup(name string) (HandlerFunc, bool) {
	spec, ok := r.handlers[name]
	if !ok {
		return nil, false
	}
	return spec.Fn, true
}
