// Package pathutil provides URL path helpers for the HTTP layer: stable-ID
// extraction and path normalization for low-cardinality metrics labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/news/[a-zA-Z0-9_-]+/view$`), Template: "/news/:id/view"},
	{Pattern: regexp.MustCompile(`^/news/popular$`), Template: "/news/popular"},
	{Pattern: regexp.MustCompile(`^/news/[a-zA-Z0-9_-]+$`), Template: "/news/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. Paths carrying stable document IDs
// (e.g. /news/sbs_news_N1001) collapse to template form (/news/:id).
// Static paths pass through unchanged.
//
// Examples:
//
//	NormalizePath("/news/sbs_news_N1001")       // "/news/:id"
//	NormalizePath("/news/sbs_news_N1001/view")  // "/news/:id/view"
//	NormalizePath("/news/popular")              // "/news/popular"
//	NormalizePath("/news")                      // "/news" (unchanged)
//	NormalizePath("/healthz")                   // "/healthz" (unchanged)
//	NormalizePath("/news/abc?cursor=ZDox")      // "/news/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /news, /healthz, /metrics pass through unchanged.
	return path
}
