package workspace

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL string to a comparison key:
// scheme://host + path with one trailing slash stripped, query and fragment
// dropped, so "https://a.com/" and "https://a.com" compare equal. The host
// is lowercased and the path keeps its percent-encoding, so keys stay
// comparable against raw URLs stored on notes and tabs.
//
// When the input is not an absolute URL, it falls back to the substring
// before the first '?'. The fragment is deliberately not stripped on the
// fallback path; keys are only compared against each other, never displayed.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		before, _, _ := strings.Cut(raw, "?")
		return before
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")
	return u.Scheme + "://" + strings.ToLower(u.Host) + path
}
