package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "news detail", path: "/news/sbs_news_N1001", want: "/news/:id"},
		{name: "news detail with hash id", path: "/news/sbs_news_9e107d9d372bb682", want: "/news/:id"},
		{name: "view action", path: "/news/sbs_news_N1001/view", want: "/news/:id/view"},
		{name: "popular is static", path: "/news/popular", want: "/news/popular"},
		{name: "list is static", path: "/news", want: "/news"},
		{name: "healthz unchanged", path: "/healthz", want: "/healthz"},
		{name: "metrics unchanged", path: "/metrics", want: "/metrics"},
		{name: "query stripped", path: "/news/sbs_news_N1001?cursor=ZDox", want: "/news/:id"},
		{name: "trailing slash stripped", path: "/news/sbs_news_N1001/", want: "/news/:id"},
		{name: "unknown path passes through", path: "/unknown/thing", want: "/unknown/thing"},
		{name: "root path", path: "/", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
