// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as NewsItem and Entity, along with
// their validation rules and domain-specific errors.
package entity

import (
	"net/url"
	"strings"
	"time"
)

// MaxBatchItems caps how many freshly fetched items flow through a single
// ingestion batch. The same cap governs the enrichment batch size, the
// upsert batch size, and the notification candidate pool, so it must stay
// a single shared constant.
const MaxBatchItems = 10

// EntityType classifies a named entity extracted from article text.
type EntityType string

const (
	EntityTypePerson       EntityType = "PERSON"
	EntityTypeLocation     EntityType = "LOCATION"
	EntityTypeOrganization EntityType = "ORGANIZATION"
	EntityTypeCompany      EntityType = "COMPANY"
	EntityTypeCountry      EntityType = "COUNTRY"
)

// IsValid reports whether the entity type is one of the closed set.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypePerson, EntityTypeLocation, EntityTypeOrganization,
		EntityTypeCompany, EntityTypeCountry:
		return true
	}
	return false
}

// Entity is a named entity annotation embedded in a NewsItem.
// Entities have no independent lifecycle; the whole list is replaced
// on each enrichment pass.
type Entity struct {
	Text        string     `json:"text"`
	Type        EntityType `json:"type"`
	Description string     `json:"description"`
}

// NewsItem represents one news article persisted in the store,
// keyed by its stable ID.
type NewsItem struct {
	StableID    string
	Title       string
	Link        string
	Description string
	Category    string
	MediaURL    string

	Summary       string
	Summary3Lines string
	EasySummary   string
	Entities      []Entity

	ViewCount int64
	Sent      bool
	SentAt    *time.Time

	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required before a NewsItem may be persisted.
// Title, link, and stable ID must be non-blank and the link must parse as
// an absolute URL.
func (n *NewsItem) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "Title", Message: "title must not be blank"}
	}
	if strings.TrimSpace(n.Link) == "" {
		return &ValidationError{Field: "Link", Message: "link must not be blank"}
	}
	if u, err := url.Parse(n.Link); err != nil || !u.IsAbs() {
		return &ValidationError{Field: "Link", Message: "link must be an absolute URL"}
	}
	if strings.TrimSpace(n.StableID) == "" {
		return &ValidationError{Field: "StableID", Message: "stable ID must not be blank"}
	}
	return nil
}

// HasEasySummary reports whether the item carries a non-blank
// simplified-language summary, which notification dispatch requires.
func (n *NewsItem) HasEasySummary() bool {
	return strings.TrimSpace(n.EasySummary) != ""
}

// SaveResult reports the outcome of one ingestion batch written to the store.
type SaveResult struct {
	SavedCount   int
	UpdatedCount int
	TotalCount   int
}
