package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"easy-news/internal/domain/entity"
)

func testNewsItem() *entity.NewsItem {
	return &entity.NewsItem{
		StableID:      "sbs_news_N1008012345",
		Title:         "정부, 새 경제 정책 발표",
		Link:          "https://news.example.com/article?news_id=N1008012345",
		Summary:       "정부가 오늘 새로운 경제 정책을 발표했다.",
		Summary3Lines: "정부 발표.\n정책 변경.\n시장 반응.",
		EasySummary:   "정부가 새 정책을 발표했어요.",
		PublishedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestFCMNotifier_buildMessage(t *testing.T) {
	notifier := NewFCMNotifier(FCMConfig{
		Enabled:  true,
		Endpoint: "https://fcm.example.com/v1/projects/test/messages:send",
		Topic:    "summary3lines",
		Timeout:  10 * time.Second,
	})

	t.Run("builds message without image", func(t *testing.T) {
		item := testNewsItem()

		payload := notifier.buildMessage(item)
		msg := payload.Message

		if msg.Topic != "summary3lines" {
			t.Errorf("expected topic=summary3lines, got %q", msg.Topic)
		}
		wantTitle := "📰 " + item.Title
		if msg.Notification.Title != wantTitle {
			t.Errorf("expected title=%q, got %q", wantTitle, msg.Notification.Title)
		}
		if msg.Notification.Body != item.EasySummary {
			t.Errorf("expected body=%q, got %q", item.EasySummary, msg.Notification.Body)
		}
		if msg.Notification.Image != "" {
			t.Errorf("expected no notification image, got %q", msg.Notification.Image)
		}

		if msg.Data["newsId"] != item.StableID {
			t.Errorf("expected data.newsId=%q, got %q", item.StableID, msg.Data["newsId"])
		}
		if msg.Data["type"] != "news_summary" {
			t.Errorf("expected data.type=news_summary, got %q", msg.Data["type"])
		}
		if msg.Data["summary"] != item.EasySummary {
			t.Errorf("expected data.summary=%q, got %q", item.EasySummary, msg.Data["summary"])
		}
		if _, ok := msg.Data["imageUrl"]; ok {
			t.Error("expected data.imageUrl to be absent when item has no media URL")
		}

		android := msg.Android.Notification
		if android.ChannelID != "news_summary" {
			t.Errorf("expected channel_id=news_summary, got %q", android.ChannelID)
		}
		if android.Priority != "high" {
			t.Errorf("expected priority=high, got %q", android.Priority)
		}
		if android.ClickAction != "FLUTTER_NOTIFICATION_CLICK" {
			t.Errorf("expected click_action=FLUTTER_NOTIFICATION_CLICK, got %q", android.ClickAction)
		}
		if android.Icon != "ic_notification_removebg" {
			t.Errorf("expected icon=ic_notification_removebg, got %q", android.Icon)
		}

		aps := msg.APNS.Payload.APS
		if aps.Badge != 1 || aps.Sound != "default" || aps.Category != "NEWS_SUMMARY" {
			t.Errorf("unexpected aps payload: %+v", aps)
		}
		if aps.MutableContent != 1 || aps.ContentAvailable != 1 {
			t.Errorf("expected mutable-content=1 and content-available=1, got %+v", aps)
		}
		if msg.APNS.FCMOptions != nil {
			t.Error("expected no apns fcm_options without an image")
		}

		webpush := msg.Webpush
		if webpush.Notification.Tag != "news_summary" {
			t.Errorf("expected webpush tag=news_summary, got %q", webpush.Notification.Tag)
		}
		if !webpush.Notification.RequireInteraction {
			t.Error("expected webpush require_interaction=true")
		}
		if len(webpush.Notification.Actions) != 1 || webpush.Notification.Actions[0].Action != "view" {
			t.Errorf("unexpected webpush actions: %+v", webpush.Notification.Actions)
		}
		wantLink := "/news/" + item.StableID
		if webpush.FCMOptions.Link != wantLink {
			t.Errorf("expected webpush link=%q, got %q", wantLink, webpush.FCMOptions.Link)
		}
	})

	t.Run("propagates image URL into every platform section", func(t *testing.T) {
		item := testNewsItem()
		item.MediaURL = "https://img.example.com/photo.jpg"

		msg := notifier.buildMessage(item).Message

		if msg.Notification.Image != item.MediaURL {
			t.Errorf("expected notification image=%q, got %q", item.MediaURL, msg.Notification.Image)
		}
		if msg.Data["imageUrl"] != item.MediaURL {
			t.Errorf("expected data.imageUrl=%q, got %q", item.MediaURL, msg.Data["imageUrl"])
		}
		if msg.Android.Notification.Image != item.MediaURL {
			t.Errorf("expected android image=%q, got %q", item.MediaURL, msg.Android.Notification.Image)
		}
		if msg.Android.Data["imageUrl"] != item.MediaURL {
			t.Errorf("expected android data.imageUrl=%q, got %q", item.MediaURL, msg.Android.Data["imageUrl"])
		}
		if msg.APNS.FCMOptions == nil || msg.APNS.FCMOptions.Image != item.MediaURL {
			t.Errorf("expected apns fcm_options image=%q, got %+v", item.MediaURL, msg.APNS.FCMOptions)
		}
		if msg.Webpush.Notification.Image != item.MediaURL {
			t.Errorf("expected webpush image=%q, got %q", item.MediaURL, msg.Webpush.Notification.Image)
		}
	})

	t.Run("omits empty image fields from JSON", func(t *testing.T) {
		payload := notifier.buildMessage(testNewsItem())

		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("failed to unmarshal payload: %v", err)
		}
		message := raw["message"].(map[string]any)
		notification := message["notification"].(map[string]any)
		if _, ok := notification["image"]; ok {
			t.Error("expected image key to be omitted from notification JSON")
		}
	})
}

func TestFCMNotifier_NotifyNews(t *testing.T) {
	t.Run("sends message with bearer auth", func(t *testing.T) {
		var gotAuth string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewFCMNotifier(FCMConfig{
			Enabled:     true,
			Endpoint:    server.URL,
			AccessToken: "test-token",
			Topic:       "summary3lines",
			Timeout:     5 * time.Second,
		})

		err := notifier.NotifyNews(context.Background(), testNewsItem())
		if err != nil {
			t.Fatalf("expected success, got error: %v", err)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", gotAuth)
		}

		var payload fcmSend
		if err := json.Unmarshal(gotBody, &payload); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if payload.Message.Topic != "summary3lines" {
			t.Errorf("expected topic=summary3lines, got %q", payload.Message.Topic)
		}
	})

	t.Run("skips send when disabled", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		notifier := NewFCMNotifier(FCMConfig{
			Enabled:  false,
			Endpoint: server.URL,
			Timeout:  5 * time.Second,
		})

		if err := notifier.NotifyNews(context.Background(), testNewsItem()); err != nil {
			t.Fatalf("expected nil error when disabled, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected 0 requests when disabled, got %d", calls.Load())
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Invalid topic","status":"INVALID_ARGUMENT"}}`))
		}))
		defer server.Close()

		notifier := NewFCMNotifier(FCMConfig{
			Enabled:  true,
			Endpoint: server.URL,
			Timeout:  5 * time.Second,
		})

		err := notifier.NotifyNews(context.Background(), testNewsItem())
		if err == nil {
			t.Fatal("expected error for 400 response")
		}
		var clientErr *ClientError
		if !errors.As(err, &clientErr) {
			t.Fatalf("expected ClientError, got %T: %v", err, err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected exactly 1 request for client error, got %d", calls.Load())
		}
	})
}

func TestFCMNotifier_send_errorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		retryAfter string
		check      func(t *testing.T, err error)
	}{
		{
			name:   "maps 429 to RateLimitError with header delay",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			retryAfter: "12",
			check: func(t *testing.T, err error) {
				rateLimitErr, ok := is429Error(err)
				if !ok {
					t.Fatalf("expected RateLimitError, got %T: %v", err, err)
				}
				if rateLimitErr.RetryAfter != 12*time.Second {
					t.Errorf("expected retry after 12s, got %v", rateLimitErr.RetryAfter)
				}
			},
		},
		{
			name:   "maps 503 to retryable ServerError with API detail",
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"code":503,"message":"Backend unavailable","status":"UNAVAILABLE"}}`,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				if !errors.As(err, &serverErr) {
					t.Fatalf("expected ServerError, got %T: %v", err, err)
				}
				if !isRetryableError(err) {
					t.Error("expected server error to be retryable")
				}
				if want := "Backend unavailable"; serverErr.Message == "" || !strings.Contains(serverErr.Message, want) {
					t.Errorf("expected message containing %q, got %q", want, serverErr.Message)
				}
			},
		},
		{
			name:   "falls back to raw body for unstructured errors",
			status: http.StatusNotFound,
			body:   "not found",
			check: func(t *testing.T, err error) {
				var clientErr *ClientError
				if !errors.As(err, &clientErr) {
					t.Fatalf("expected ClientError, got %T: %v", err, err)
				}
				if !strings.Contains(clientErr.Message, "not found") {
					t.Errorf("expected raw body in message, got %q", clientErr.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			notifier := NewFCMNotifier(FCMConfig{
				Enabled:  true,
				Endpoint: server.URL,
				Timeout:  5 * time.Second,
			})

			err := notifier.send(context.Background(), testNewsItem())
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestExtractRetryAfter(t *testing.T) {
	t.Run("defaults to 5s without header", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		if got := extractRetryAfter(resp); got != 5*time.Second {
			t.Errorf("expected default 5s, got %v", got)
		}
	})

	t.Run("ignores non-numeric header", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{"Retry-After": []string{"soon"}}}
		if got := extractRetryAfter(resp); got != 5*time.Second {
			t.Errorf("expected default 5s, got %v", got)
		}
	})
}
