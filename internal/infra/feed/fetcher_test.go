package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easy-news/internal/infra/feed"
)

func serveXML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		if _, err := w.Write([]byte(body)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetcher_Fetch_Success(t *testing.T) {
	server := serveXML(t, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test Feed</title>
    <link>https://news.example.com</link>
    <description>Test Description</description>
    <item>
      <title>속보 기사 1</title>
      <link>https://news.example.com/article1?news_id=N1001</link>
      <description>기사 요약 1</description>
      <category>정치</category>
      <guid>N1001</guid>
      <pubDate>Mon, 01 Jun 2026 09:00:00 +0900</pubDate>
      <media:content url="https://img.example.com/1.jpg" type="image/jpeg"/>
    </item>
    <item>
      <title>속보 기사 2</title>
      <link>https://news.example.com/article2</link>
      <description>기사 요약 2</description>
      <pubDate>Mon, 01 Jun 2026 10:00:00 +0900</pubDate>
    </item>
  </channel>
</rss>`)

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := feed.NewFetcher(client)

	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items length = %d, want 2", len(items))
	}

	if items[0].Title != "속보 기사 1" {
		t.Errorf("items[0].Title = %q, want %q", items[0].Title, "속보 기사 1")
	}
	if items[0].GUID != "N1001" {
		t.Errorf("items[0].GUID = %q, want %q", items[0].GUID, "N1001")
	}
	if items[0].Category != "정치" {
		t.Errorf("items[0].Category = %q, want %q", items[0].Category, "정치")
	}
	if items[0].MediaURL != "https://img.example.com/1.jpg" {
		t.Errorf("items[0].MediaURL = %q, want %q", items[0].MediaURL, "https://img.example.com/1.jpg")
	}
	if items[0].Description != "기사 요약 1" {
		t.Errorf("items[0].Description = %q, want %q", items[0].Description, "기사 요약 1")
	}

	wantPub := time.Date(2026, 6, 1, 9, 0, 0, 0, time.FixedZone("", 9*3600))
	if !items[0].PublishedAt.Equal(wantPub) {
		t.Errorf("items[0].PublishedAt = %v, want %v", items[0].PublishedAt, wantPub)
	}

	if items[1].GUID != "" {
		t.Errorf("items[1].GUID = %q, want empty", items[1].GUID)
	}
	if items[1].Category != "" {
		t.Errorf("items[1].Category = %q, want empty", items[1].Category)
	}
	if items[1].MediaURL != "" {
		t.Errorf("items[1].MediaURL = %q, want empty", items[1].MediaURL)
	}
}

func TestFetcher_Fetch_MediaURLChildElement(t *testing.T) {
	server := serveXML(t, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test Feed</title>
    <link>https://news.example.com</link>
    <description>d</description>
    <item>
      <title>기사</title>
      <link>https://news.example.com/a</link>
      <media:content><url>https://img.example.com/child.jpg</url></media:content>
    </item>
  </channel>
</rss>`)

	fetcher := feed.NewFetcher(nil)
	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items length = %d, want 1", len(items))
	}
	if items[0].MediaURL != "https://img.example.com/child.jpg" {
		t.Errorf("MediaURL = %q, want %q", items[0].MediaURL, "https://img.example.com/child.jpg")
	}
}

func TestFetcher_Fetch_SkipsEntriesWithoutTitleOrLink(t *testing.T) {
	server := serveXML(t, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://news.example.com</link>
    <description>d</description>
    <item>
      <title>제목 있음</title>
      <link>https://news.example.com/ok</link>
    </item>
    <item>
      <title>링크 없음</title>
    </item>
    <item>
      <link>https://news.example.com/no-title</link>
    </item>
  </channel>
</rss>`)

	fetcher := feed.NewFetcher(nil)
	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items length = %d, want 1", len(items))
	}
	if items[0].Link != "https://news.example.com/ok" {
		t.Errorf("items[0].Link = %q", items[0].Link)
	}
}

func TestFetcher_Fetch_PubDateFallback(t *testing.T) {
	server := serveXML(t, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://news.example.com</link>
    <description>d</description>
    <item>
      <title>날짜 없는 기사</title>
      <link>https://news.example.com/undated</link>
    </item>
  </channel>
</rss>`)

	before := time.Now()
	fetcher := feed.NewFetcher(nil)
	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	after := time.Now()

	if len(items) != 1 {
		t.Fatalf("items length = %d, want 1", len(items))
	}
	if items[0].PublishedAt.Before(before) || items[0].PublishedAt.After(after) {
		t.Errorf("PublishedAt = %v, want within [%v, %v]", items[0].PublishedAt, before, after)
	}
}

func TestFetcher_Fetch_InvalidXML(t *testing.T) {
	server := serveXML(t, "this is not a feed")

	fetcher := feed.NewFetcher(nil)
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() expected error for invalid feed")
	}
}
