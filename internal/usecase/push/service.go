// Package push implements the time-gated notification dispatch: on each
// scheduler tick it picks the newest unsent enriched news item and sends it
// as a push notification, but only inside the configured daily window.
package push

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"easy-news/internal/domain/entity"
	"easy-news/internal/observability/metrics"
	"easy-news/internal/repository"
)

// Notifier delivers one news item as a push notification.
type Notifier interface {
	NotifyNews(ctx context.Context, item *entity.NewsItem) error
}

// Config holds the dispatch window configuration.
// Hours are in the configured timezone; the window spans
// [WindowStartHour, WindowEndHour).
type Config struct {
	WindowStartHour int
	WindowEndHour   int
	Location        *time.Location
}

// DefaultConfig returns the standard dispatch window: 06:00 to 21:00
// Korea time, so subscribers are not woken at night.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		WindowStartHour: 6,
		WindowEndHour:   21,
		Location:        loc,
	}
}

// Dispatch outcomes.
const (
	OutcomeSent          = "sent"
	OutcomeSkippedWindow = "skipped_window"
	OutcomeNoCandidate   = "no_candidate"
)

// Result describes what one dispatch tick did.
type Result struct {
	Outcome string
	Item    *entity.NewsItem
}

// Service dispatches queued notifications on scheduler ticks.
type Service struct {
	Repo     repository.NewsRepository
	Notifier Notifier
	Config   Config

	// Clock overrides the time source in tests. Nil means time.Now.
	Clock func() time.Time
}

// NewService creates a push dispatch Service.
func NewService(repo repository.NewsRepository, notifier Notifier, config Config) *Service {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Service{
		Repo:     repo,
		Notifier: notifier,
		Config:   config,
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// inWindow reports whether t falls inside the dispatch window.
func (s *Service) inWindow(t time.Time) bool {
	hour := t.In(s.Config.Location).Hour()
	return hour >= s.Config.WindowStartHour && hour < s.Config.WindowEndHour
}

// DispatchNext sends the newest unsent enriched news item, if any.
//
// Outside the dispatch window nothing is sent and nothing is consumed; the
// item stays queued for the next in-window tick. An item is only marked
// sent after delivery succeeds, so a failed send is retried on a later
// tick. The sent-flag transition is one-way.
func (s *Service) DispatchNext(ctx context.Context) (*Result, error) {
	logger := slog.Default()
	now := s.now()

	if !s.inWindow(now) {
		logger.Info("outside dispatch window, skipping",
			slog.Int("hour", now.In(s.Config.Location).Hour()),
			slog.Int("window_start", s.Config.WindowStartHour),
			slog.Int("window_end", s.Config.WindowEndHour))
		metrics.RecordNotification(OutcomeSkippedWindow)
		return &Result{Outcome: OutcomeSkippedWindow}, nil
	}

	item, err := s.Repo.NextUnsent(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unsent news: %w", err)
	}
	if item == nil {
		logger.Info("no unsent enriched news, nothing to dispatch")
		metrics.RecordNotification(OutcomeNoCandidate)
		return &Result{Outcome: OutcomeNoCandidate}, nil
	}

	if err := s.Notifier.NotifyNews(ctx, item); err != nil {
		metrics.RecordNotification("failed")
		return nil, fmt.Errorf("notify news %s: %w", item.StableID, err)
	}

	if err := s.Repo.MarkSent(ctx, item.StableID, s.now()); err != nil {
		// The notification went out; a failed flag write means the item may
		// be dispatched again on the next tick.
		return nil, fmt.Errorf("mark news %s sent: %w", item.StableID, err)
	}

	metrics.RecordNotification(OutcomeSent)
	logger.Info("notification dispatched",
		slog.String("news_id", item.StableID),
		slog.String("title", item.Title))
	return &Result{Outcome: OutcomeSent, Item: item}, nil
}
