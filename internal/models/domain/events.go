package domain

import "time"

type EventType string

const (
	EventDocumentRefreshed EventType = "document_refreshed"
	EventStaleServed       EventType = "stale_served"
)

// CacheEvent describes a change in what the document cache is serving.
type CacheEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"event"`
	ModelCount int       `json:"model_count"`
	StoredAt   time.Time `json:"stored_at"`
	OccurredAt time.Time `json:"occurred_at"`
	Error      string    `json:"error,omitempty"`
}
