// Package feedback defines the domain records for the triage hierarchy:
// Theme → SubTheme → CustomerAsk → Mention, plus the parallel
// TranscriptClassification collection. All records are immutable value
// types from the store's perspective; a fresh fetch replaces a record,
// it never mutates one in place.
package feedback

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("feedback: not found")

// Source identifies where a piece of feedback originated.
type Source string

// Known feedback sources. The backend may introduce new ones; treat
// unrecognized values as opaque.
const (
	SourceSlack  Source = "slack"
	SourceEmail  Source = "email"
	SourceCall   Source = "call"
	SourceTicket Source = "ticket"
)

// Urgency buckets assigned by classification.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Sentiment buckets assigned by classification.
type Sentiment string

const (
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// AskStatus is the triage state of a CustomerAsk.
type AskStatus string

const (
	AskStatusOpen     AskStatus = "open"
	AskStatusPlanned  AskStatus = "planned"
	AskStatusShipped  AskStatus = "shipped"
	AskStatusDeclined AskStatus = "declined"
)

// Theme is a top-level feedback category.
type Theme struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Color         string    `json:"color,omitempty"`
	SubThemeCount int       `json:"sub_theme_count"`
	FeedbackCount int       `json:"feedback_count"`
	Locked        bool      `json:"locked"`
	AIGenerated   bool      `json:"ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntityID implements Entity.
func (t Theme) EntityID() string { return t.ID }

// SubTheme is a category nested under a Theme.
type SubTheme struct {
	ID            string `json:"id"`
	ThemeID       string `json:"theme_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	FeedbackCount int    `json:"feedback_count"`
	Locked        bool   `json:"locked"`
	Preview       string `json:"preview,omitempty"`
}

// EntityID implements Entity.
func (s SubTheme) EntityID() string { return s.ID }

// AIInsights is the optional classification payload attached to an ask.
type AIInsights struct {
	KeyPoints        []string `json:"key_points,omitempty"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// CustomerAsk is a distinct feature or issue request nested under a
// SubTheme. ThemeID is denormalized so an ask can be placed without a
// sub-theme lookup.
type CustomerAsk struct {
	ID           string      `json:"id"`
	SubThemeID   string      `json:"sub_theme_id"`
	ThemeID      string      `json:"theme_id"`
	Title        string      `json:"title"`
	Status       AskStatus   `json:"status"`
	Source       Source      `json:"source"`
	Urgency      Urgency     `json:"urgency"`
	Sentiment    Sentiment   `json:"sentiment"`
	Tags         []string    `json:"tags,omitempty"`
	MentionCount int         `json:"mention_count"`
	Contact      string      `json:"contact,omitempty"`
	Insights     *AIInsights `json:"insights,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// EntityID implements Entity.
func (a CustomerAsk) EntityID() string { return a.ID }

// Mention is one raw source message linked to a CustomerAsk. A message
// that mentions several asks appears as one Mention per (ask, message)
// pairing.
type Mention struct {
	ID        string    `json:"id"`
	AskID     string    `json:"ask_id"`
	Content   string    `json:"content"`
	Source    Source    `json:"source"`
	SourceRef string    `json:"source_ref,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements Entity.
func (m Mention) EntityID() string { return m.ID }

// TranscriptClassification is a workspace-scoped classification result,
// independent of the Theme tree but cross-referenced by selection.
type TranscriptClassification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// EntityID implements Entity.
func (c TranscriptClassification) EntityID() string { return c.ID }

// Entity is implemented by every record the store caches.
type Entity interface {
	EntityID() string
}

// Page is one page of a cursor-paginated listing. NextCursor is an
// opaque token supplied by the backend; the client never derives or
// recomputes it.
type Page[T Entity] struct {
	Items      []T    `json:"items"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// MergeResult is the outcome of merging one sub-theme into another. The
// backend performs the delete-and-move as one transaction; the client
// applies the result atomically.
type MergeResult struct {
	SourceID string   `json:"source_id"`
	Target   SubTheme `json:"target"`
	Moved    int      `json:"moved"`
}

// ThemeDraft carries the writable fields for theme create/update.
type ThemeDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// SubThemeDraft carries the writable fields for sub-theme create/update.
type SubThemeDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
