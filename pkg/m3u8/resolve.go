package m3u8

import "net/url"

// resolveURI resolves ref against base using standard RFC 3986 reference
// resolution. A ref that fails to resolve (e.g. an empty or invalid base)
// is returned verbatim, per spec.md §9's note on relative references that
// can't be resolved.
func resolveURI(base *url.URL, ref string) string {
	if ref == "" {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if base == nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}
