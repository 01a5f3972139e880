package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNetworkResource(t *testing.T) {
	network := []string{
		"https://example.com/index.html",
		"http://example.com/app.js",
		"https://cdn.example.com/font.woff2?v=3",
	}
	for _, url := range network {
		assert.True(t, IsNetworkResource(url), url)
	}

	local := []string{
		"data:image/png;base64,iVBORw0KGgo=",
		"blob:https://example.com/9115d58c-bcda-ff47-86df-7bc5a953d320",
		"intent://example.com#Intent;scheme=https;end",
		"file:///tmp/index.html",
		"filesystem:https://example.com/temporary/cache.bin",
		"chrome-extension://abcdefghijklmnop/content.js",
	}
	for _, url := range local {
		assert.False(t, IsNetworkResource(url), url)
	}
}

func TestIsNetworkResourceSchemePrefixOnly(t *testing.T) {
	// A scheme name appearing in the path must not trigger the filter.
	assert.True(t, IsNetworkResource("https://example.com/data:thing"))
	assert.True(t, IsNetworkResource("https://file.example.com/x"))
}

func TestHasBody(t *testing.T) {
	assert.True(t, HasBody(200, "GET"))
	assert.True(t, HasBody(200, "OPTIONS"))

	// The no-body branch requires a response to be 204 and 304 at once,
	// which never happens, so both statuses pass through on their own.
	assert.True(t, HasBody(204, "GET"))
	assert.True(t, HasBody(304, "GET"))
	assert.True(t, HasBody(204, "OPTIONS"))
}
