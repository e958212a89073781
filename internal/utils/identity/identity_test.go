package identity_test

import (
	"strings"
	"testing"

	"easy-news/internal/utils/identity"

	"github.com/stretchr/testify/assert"
)

func newResolver() *identity.Resolver {
	return identity.NewResolver("sbs_news", "news_id")
}

func TestResolve_GuidTakesPriority(t *testing.T) {
	r := newResolver()

	id := r.Resolve("guid-123", "https://news.example.com/item?news_id=999")
	assert.Equal(t, "guid-123", id)

	// Repeated calls are idempotent.
	assert.Equal(t, id, r.Resolve("guid-123", "https://news.example.com/item?news_id=999"))
}

func TestResolve_GuidWhitespaceTrimmed(t *testing.T) {
	r := newResolver()
	assert.Equal(t, "guid-123", r.Resolve("  guid-123  ", ""))
}

func TestResolve_URLShapedGuidReducedToLinkParam(t *testing.T) {
	r := newResolver()
	id := r.Resolve("https://news.example.com/item?news_id=7654321", "")
	assert.Equal(t, "sbs_news_7654321", id)
}

func TestResolve_LinkParamFallback(t *testing.T) {
	r := newResolver()
	id := r.Resolve("", "https://news.example.com/item?plink=RSS&news_id=1234567")
	assert.Equal(t, "sbs_news_1234567", id)
}

func TestResolve_LinkHashFallback(t *testing.T) {
	r := newResolver()
	link := "https://news.example.com/article/some-slug"

	id := r.Resolve("", link)
	assert.True(t, strings.HasPrefix(id, "sbs_news_"))
	// MD5 of the link: full 32 hex chars after the prefix.
	assert.Len(t, strings.TrimPrefix(id, "sbs_news_"), 32)

	// Hash-based IDs are deterministic across calls.
	assert.Equal(t, id, r.Resolve("", link))

	// A different link resolves to a different ID.
	assert.NotEqual(t, id, r.Resolve("", link+"-other"))
}

func TestResolve_NoGuidNoLink(t *testing.T) {
	r := newResolver()

	first := r.Resolve("", "")
	second := r.Resolve("", "")

	assert.True(t, strings.HasPrefix(first, "sbs_news_"))
	// The time+random composite is explicitly non-deterministic.
	assert.NotEqual(t, first, second)
}

func TestSafeDocumentID(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"already safe", "sbs_news_123", "sbs_news_123"},
		{"safe with dashes", "abc-DEF_09", "abc-DEF_09"},
		{"url with item param", "https://news.example.com/item?news_id=42", "sbs_news_42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.SafeDocumentID(tt.raw))
		})
	}

	t.Run("unsafe non-url collapses to truncated hash", func(t *testing.T) {
		id := r.SafeDocumentID("guid with spaces / slashes")
		assert.True(t, strings.HasPrefix(id, "sbs_news_"))
		assert.Len(t, strings.TrimPrefix(id, "sbs_news_"), 16)
		// Deterministic.
		assert.Equal(t, id, r.SafeDocumentID("guid with spaces / slashes"))
	})
}
