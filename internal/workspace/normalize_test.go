package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL_Variants(t *testing.T) {
	// Trailing slash, query, and fragment variants all collapse to one key.
	want := NormalizeURL("https://a.com/x#frag")

	assert.Equal(t, want, NormalizeURL("https://a.com/x/"))
	assert.Equal(t, want, NormalizeURL("https://a.com/x"))
	assert.Equal(t, want, NormalizeURL("https://a.com/x?q=1"))
	assert.Equal(t, want, NormalizeURL("https://a.com/x?q=1#frag"))
}

func TestNormalizeURL_RootPath(t *testing.T) {
	assert.Equal(t, NormalizeURL("https://a.com"), NormalizeURL("https://a.com/"))
}

func TestNormalizeURL_KeepsPort(t *testing.T) {
	assert.Equal(t, "http://localhost:8732/api", NormalizeURL("http://localhost:8732/api?x=1"))
}

func TestNormalizeURL_MalformedFallsBackToQueryStrip(t *testing.T) {
	assert.Equal(t, "not a url", NormalizeURL("not a url?q=1"))
	assert.Equal(t, "/relative/path", NormalizeURL("/relative/path?ref=abc"))
}

func TestNormalizeURL_FallbackKeepsFragment(t *testing.T) {
	// The fallback path only strips the query string; the fragment stays.
	assert.Equal(t, "relative#frag", NormalizeURL("relative#frag"))
}

func TestNormalizeURL_LowercasesHost(t *testing.T) {
	assert.Equal(t, NormalizeURL("https://a.com/x"), NormalizeURL("https://A.com/x"))
	assert.Equal(t, "https://example.com/X", NormalizeURL("https://EXAMPLE.com/X"))
}

func TestNormalizeURL_KeepsPercentEncoding(t *testing.T) {
	// The key must stay comparable against raw stored URLs, so the path is
	// not decoded.
	assert.Equal(t, "https://a.com/a%20b", NormalizeURL("https://a.com/a%20b?q=1"))
}

func TestNormalizeURL_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "https://a.com/x", NormalizeURL("https://a.com/x/?q=1"))
	}
}
