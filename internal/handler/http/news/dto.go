// Package news provides HTTP handlers for the news read API and the manual
// ingestion trigger.
package news

import (
	"time"

	"easy-news/internal/domain/entity"
)

// EntityDTO is the JSON shape of one named entity annotation.
type EntityDTO struct {
	Text        string `json:"text"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// DTO represents the JSON structure for news data transfer.
// The three summary keys keep the store's field names so existing clients
// keep working.
type DTO struct {
	ID            string      `json:"id" example:"sbs_news_N1008012345"`
	Title         string      `json:"title" example:"정부, 새 경제 정책 발표"`
	Link          string      `json:"link" example:"https://news.example.com/article?news_id=N1008012345"`
	Description   string      `json:"description"`
	Category      string      `json:"category,omitempty" example:"정치"`
	MediaURL      string      `json:"media_url,omitempty"`
	Summary       string      `json:"summary,omitempty"`
	Summary3Lines string      `json:"summary3lines,omitempty"`
	EasySummary   string      `json:"easySummary,omitempty"`
	Entities      []EntityDTO `json:"entities,omitempty"`
	ViewCount     int64       `json:"view_count"`
	PublishedAt   time.Time   `json:"published_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// toDTO maps a domain news item to its transfer shape.
func toDTO(item *entity.NewsItem) DTO {
	out := DTO{
		ID:            item.StableID,
		Title:         item.Title,
		Link:          item.Link,
		Description:   item.Description,
		Category:      item.Category,
		MediaURL:      item.MediaURL,
		Summary:       item.Summary,
		Summary3Lines: item.Summary3Lines,
		EasySummary:   item.EasySummary,
		ViewCount:     item.ViewCount,
		PublishedAt:   item.PublishedAt,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	for _, e := range item.Entities {
		out.Entities = append(out.Entities, EntityDTO{
			Text:        e.Text,
			Type:        string(e.Type),
			Description: e.Description,
		})
	}
	return out
}

func toDTOs(items []*entity.NewsItem) []DTO {
	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}
	return dtos
}
