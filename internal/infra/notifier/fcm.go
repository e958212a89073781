package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"easy-news/internal/domain/entity"
)

// FCMConfig contains configuration for FCM topic notifications.
type FCMConfig struct {
	// Enabled indicates whether FCM notifications are enabled
	Enabled bool

	// Endpoint is the FCM HTTP v1 send endpoint for the project,
	// e.g. https://fcm.googleapis.com/v1/projects/<project-id>/messages:send
	Endpoint string

	// AccessToken is the OAuth2 bearer token used to authorize sends.
	AccessToken string

	// Topic is the FCM topic all subscribers receive news summaries on.
	Topic string

	// Timeout is the HTTP request timeout for FCM API calls
	Timeout time.Duration

	// Location is the timezone stamped into notification data payloads.
	Location *time.Location
}

// LoadFCMConfigFromEnv loads FCM configuration from environment variables.
//
// Environment variables:
//   - FCM_ENABLED: "true" to enable sends (default: false)
//   - FCM_ENDPOINT: project send endpoint
//   - FCM_ACCESS_TOKEN: OAuth2 bearer token
//   - FCM_TOPIC: topic name (default: "summary3lines")
//   - NOTIFY_TIMEZONE: IANA timezone (default: "Asia/Seoul")
func LoadFCMConfigFromEnv() FCMConfig {
	enabled, _ := strconv.ParseBool(os.Getenv("FCM_ENABLED"))

	topic := os.Getenv("FCM_TOPIC")
	if topic == "" {
		topic = "summary3lines"
	}

	tz := os.Getenv("NOTIFY_TIMEZONE")
	if tz == "" {
		tz = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("invalid NOTIFY_TIMEZONE, falling back to UTC",
			slog.String("value", tz),
			slog.Any("error", err))
		loc = time.UTC
	}

	return FCMConfig{
		Enabled:     enabled,
		Endpoint:    os.Getenv("FCM_ENDPOINT"),
		AccessToken: os.Getenv("FCM_ACCESS_TOKEN"),
		Topic:       topic,
		Timeout:     10 * time.Second,
		Location:    loc,
	}
}

// FCMNotifier sends news summaries to an FCM topic.
type FCMNotifier struct {
	config      FCMConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewFCMNotifier creates a new FCMNotifier with the specified configuration.
// The rate limiter is set well below FCM's quota since the gate dispatches
// at most one notification per tick.
func NewFCMNotifier(config FCMConfig) *FCMNotifier {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &FCMNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 3),
	}
}

// fcmSend is the request envelope for the FCM v1 send endpoint.
type fcmSend struct {
	Message fcmMessage `json:"message"`
}

// fcmMessage mirrors the cross-platform FCM message shape.
type fcmMessage struct {
	Topic        string             `json:"topic"`
	Notification fcmNotification    `json:"notification"`
	Data         map[string]string  `json:"data"`
	Android      fcmAndroid         `json:"android"`
	APNS         fcmAPNS            `json:"apns"`
	Webpush      fcmWebpush         `json:"webpush"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type fcmAndroid struct {
	Notification fcmAndroidNotification `json:"notification"`
	Data         map[string]string      `json:"data"`
}

type fcmAndroidNotification struct {
	Icon                  string `json:"icon"`
	ChannelID             string `json:"channel_id"`
	Priority              string `json:"priority"`
	Title                 string `json:"title"`
	Body                  string `json:"body"`
	ClickAction           string `json:"click_action"`
	DefaultSound          bool   `json:"default_sound"`
	DefaultVibrateTimings bool   `json:"default_vibrate_timings"`
	Visibility            string `json:"visibility"`
	NotificationCount     int    `json:"notification_count"`
	Image                 string `json:"image,omitempty"`
}

type fcmAPNS struct {
	Payload    fcmAPNSPayload  `json:"payload"`
	FCMOptions *fcmAPNSOptions `json:"fcm_options,omitempty"`
}

type fcmAPNSPayload struct {
	APS fcmAPS `json:"aps"`
}

type fcmAPS struct {
	Badge            int      `json:"badge"`
	Sound            string   `json:"sound"`
	Category         string   `json:"category"`
	MutableContent   int      `json:"mutable-content"`
	ContentAvailable int      `json:"content-available"`
	Alert            fcmAlert `json:"alert"`
}

type fcmAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAPNSOptions struct {
	Image string `json:"image"`
}

type fcmWebpush struct {
	Notification fcmWebpushNotification `json:"notification"`
	FCMOptions   fcmWebpushOptions      `json:"fcm_options"`
}

type fcmWebpushNotification struct {
	Title              string             `json:"title"`
	Body               string             `json:"body"`
	Tag                string             `json:"tag"`
	RequireInteraction bool               `json:"require_interaction"`
	Actions            []fcmWebpushAction `json:"actions"`
	Image              string             `json:"image,omitempty"`
}

type fcmWebpushAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

type fcmWebpushOptions struct {
	Link string `json:"link"`
}

// fcmErrorResponse is the error body returned by the FCM API.
type fcmErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// buildMessage creates the FCM message for a news item. The visible body is
// the simplified-language summary; the richer fields travel in data. The
// image URL is propagated into every platform section only when present.
func (f *FCMNotifier) buildMessage(item *entity.NewsItem) fcmSend {
	title := "📰 " + item.Title
	body := item.EasySummary
	now := time.Now().In(f.config.Location).Format(time.RFC3339)

	data := map[string]string{
		"newsId":    item.StableID,
		"type":      "news_summary",
		"timestamp": now,
		"title":     item.Title,
		"summary":   body,
	}

	msg := fcmMessage{
		Topic: f.config.Topic,
		Notification: fcmNotification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: fcmAndroid{
			Notification: fcmAndroidNotification{
				Icon:                  "ic_notification_removebg",
				ChannelID:             "news_summary",
				Priority:              "high",
				Title:                 title,
				Body:                  body,
				ClickAction:           "FLUTTER_NOTIFICATION_CLICK",
				DefaultSound:          true,
				DefaultVibrateTimings: true,
				Visibility:            "public",
				NotificationCount:     1,
			},
			Data: data,
		},
		APNS: fcmAPNS{
			Payload: fcmAPNSPayload{
				APS: fcmAPS{
					Badge:            1,
					Sound:            "default",
					Category:         "NEWS_SUMMARY",
					MutableContent:   1,
					ContentAvailable: 1,
					Alert: fcmAlert{
						Title: title,
						Body:  body,
					},
				},
			},
		},
		Webpush: fcmWebpush{
			Notification: fcmWebpushNotification{
				Title:              title,
				Body:               body,
				Tag:                "news_summary",
				RequireInteraction: true,
				Actions: []fcmWebpushAction{
					{Action: "view", Title: "보기"},
				},
			},
			FCMOptions: fcmWebpushOptions{
				Link: "/news/" + item.StableID,
			},
		},
	}

	if item.MediaURL != "" {
		msg.Notification.Image = item.MediaURL
		data["imageUrl"] = item.MediaURL
		msg.Android.Notification.Image = item.MediaURL
		msg.APNS.FCMOptions = &fcmAPNSOptions{Image: item.MediaURL}
		msg.Webpush.Notification.Image = item.MediaURL
	}

	return fcmSend{Message: msg}
}

// NotifyNews sends one topic notification for the given news item.
// It applies rate limiting and retries transient failures.
func (f *FCMNotifier) NotifyNews(ctx context.Context, item *entity.NewsItem) error {
	if !f.config.Enabled {
		slog.Info("FCM notifications disabled, skipping send",
			slog.String("news_id", item.StableID))
		return nil
	}

	if err := f.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("NotifyNews: rate limiter: %w", err)
	}

	return f.sendWithRetry(ctx, item)
}

// sendWithRetry sends the FCM request with bounded retry.
//
// Retry strategy:
//   - Max attempts: 2
//   - 429 errors: wait the server-provided retry_after
//   - Server errors (5xx): fixed 5 second backoff
//   - Client errors (4xx): no retry, fail immediately
func (f *FCMNotifier) sendWithRetry(ctx context.Context, item *entity.NewsItem) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := f.send(ctx, item)
		if err == nil {
			slog.Info("FCM notification sent",
				slog.String("news_id", item.StableID),
				slog.String("topic", f.config.Topic),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		delay := baseDelay
		if rateLimitErr, ok := is429Error(err); ok {
			delay = rateLimitErr.RetryAfter
			slog.Warn("FCM rate limit hit, backing off",
				slog.String("news_id", item.StableID),
				slog.Duration("retry_after", delay))
		} else if !isRetryableError(err) {
			slog.Error("FCM notification failed with non-retryable error",
				slog.String("news_id", item.StableID),
				slog.Any("error", err))
			return err
		} else {
			slog.Warn("FCM notification failed, retrying",
				slog.String("news_id", item.StableID),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("NotifyNews aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("NotifyNews: %d attempts failed: %w", maxAttempts, lastErr)
}

// send performs one FCM API call.
func (f *FCMNotifier) send(ctx context.Context, item *entity.NewsItem) error {
	payload := f.buildMessage(item)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal FCM payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.config.AccessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    "FCM rate limit exceeded",
			RetryAfter: extractRetryAfter(resp),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("FCM API client error: %s", apiErrorDetail(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("FCM API server error: %s", apiErrorDetail(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// apiErrorDetail extracts the API error message when the body is structured,
// falling back to the raw body.
func apiErrorDetail(body []byte) string {
	var apiErr fcmErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return string(body)
}

// extractRetryAfter reads the Retry-After header in seconds, defaulting to 5s.
func extractRetryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}
