package domain

import "strings"

// fallbackName is used when a URL yields no usable display name.
const fallbackName = "New Link"

// NormalizeURL guarantees an explicit scheme, prefixing https:// when
// neither http:// nor https:// is present (case-insensitive).
// No further syntax validation happens here: a malformed string is
// stored as-is and still categorizes deterministically.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}
	return "https://" + url
}

// DeriveName extracts a display name from a URL: scheme and leading
// www. stripped, cut at the first of "/", "?" or "#".
// Used only when the user supplied no name.
func DeriveName(url string) string {
	name := url
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimPrefix(name, "www.")

	if i := strings.IndexAny(name, "/?#"); i >= 0 {
		name = name[:i]
	}

	if strings.TrimSpace(name) == "" {
		return fallbackName
	}
	return name
}
