package scraper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easy-news/internal/infra/scraper"
)

func testConfig() scraper.Config {
	cfg := scraper.DefaultConfig()
	// httptest servers bind to loopback
	cfg.DenyPrivateIPs = false
	return cfg
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(html)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractArticle_PrimarySelector(t *testing.T) {
	server := serveHTML(t, `<html><body>
<nav>메뉴</nav>
<div class="text_area" itemprop="articleBody">
첫 문장입니다.<br/>둘째 문장입니다.
</div>
</body></html>`)

	s := scraper.NewArticleScraper(testConfig())
	body, err := s.ExtractArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ExtractArticle() error = %v", err)
	}

	if !strings.Contains(body, "첫 문장입니다.") {
		t.Errorf("body missing first sentence: %q", body)
	}
	if !strings.Contains(body, "\n") {
		t.Errorf("br was not converted to newline: %q", body)
	}
	if strings.Contains(body, "메뉴") {
		t.Errorf("body includes navigation text: %q", body)
	}
}

func TestExtractArticle_FallbackSelector(t *testing.T) {
	long := strings.Repeat("본문 문장입니다. ", 30)
	server := serveHTML(t, `<html><body>
<div class="article_body">`+long+`</div>
</body></html>`)

	s := scraper.NewArticleScraper(testConfig())
	body, err := s.ExtractArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ExtractArticle() error = %v", err)
	}
	if !strings.Contains(body, "본문 문장입니다.") {
		t.Errorf("fallback selector did not match: %q", body)
	}
}

func TestExtractArticle_FallbackTooShort(t *testing.T) {
	server := serveHTML(t, `<html><body>
<div class="article_body">짧은 글</div>
</body></html>`)

	cfg := testConfig()
	cfg.UseReadability = false
	s := scraper.NewArticleScraper(cfg)

	_, err := s.ExtractArticle(context.Background(), server.URL)
	if !errors.Is(err, scraper.ErrNoContent) {
		t.Fatalf("ExtractArticle() error = %v, want ErrNoContent", err)
	}
}

func TestExtractArticle_ReadabilityFallback(t *testing.T) {
	para := strings.Repeat("독자가 읽을 만한 충분히 긴 기사 단락입니다. ", 20)
	server := serveHTML(t, `<html><head><title>기사 제목</title></head><body>
<article><h1>기사 제목</h1><p>`+para+`</p><p>`+para+`</p></article>
</body></html>`)

	s := scraper.NewArticleScraper(testConfig())
	body, err := s.ExtractArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ExtractArticle() error = %v", err)
	}
	if !strings.Contains(body, "기사 단락입니다.") {
		t.Errorf("readability fallback did not extract body: %q", body)
	}
}

func TestExtractArticle_ScriptAndStyleRemoved(t *testing.T) {
	server := serveHTML(t, `<html><body>
<div class="text_area" itemprop="articleBody">
<script>var secret = 1;</script>
<style>.x { color: red }</style>
본문 텍스트입니다.
</div>
</body></html>`)

	s := scraper.NewArticleScraper(testConfig())
	body, err := s.ExtractArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ExtractArticle() error = %v", err)
	}
	if strings.Contains(body, "secret") || strings.Contains(body, "color") {
		t.Errorf("script/style leaked into body: %q", body)
	}
}

func TestExtractArticle_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	s := scraper.NewArticleScraper(testConfig())
	if _, err := s.ExtractArticle(context.Background(), server.URL); err == nil {
		t.Fatal("ExtractArticle() expected error for 404")
	}
}

func TestExtractArticle_RejectsPrivateIP(t *testing.T) {
	cfg := scraper.DefaultConfig() // DenyPrivateIPs stays true
	s := scraper.NewArticleScraper(cfg)

	_, err := s.ExtractArticle(context.Background(), "http://127.0.0.1/article")
	if !errors.Is(err, scraper.ErrPrivateIP) {
		t.Fatalf("ExtractArticle() error = %v, want ErrPrivateIP", err)
	}
}

func TestExtractArticle_RejectsBadScheme(t *testing.T) {
	s := scraper.NewArticleScraper(testConfig())

	_, err := s.ExtractArticle(context.Background(), "ftp://example.com/article")
	if !errors.Is(err, scraper.ErrInvalidURL) {
		t.Fatalf("ExtractArticle() error = %v, want ErrInvalidURL", err)
	}
}
