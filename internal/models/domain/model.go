package domain

import "encoding/json"

// ModelRecord is one raw record of the upstream document. Every field is
// optional; absence is represented by a nil pointer, slice or raw message.
type ModelRecord struct {
	Code           *string         `json:"code,omitempty"`
	Name           *string         `json:"name,omitempty"`
	Definition     *string         `json:"definition,omitempty"`
	Priority       json.RawMessage `json:"priority,omitempty"`
	Transformation *string         `json:"transformation,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Example        *string         `json:"example,omitempty"`
	RelatedModels  []string        `json:"related_models,omitempty"`
	Status         *string         `json:"status,omitempty"`
	Version        json.RawMessage `json:"version,omitempty"`
	Relationships  json.RawMessage `json:"relationships,omitempty"`
}

// Document is the upstream payload.
type Document struct {
	Models []ModelRecord `json:"models"`
}

// PublicModel is the shape served to API clients.
//
// Passthrough fields are omitted when the source lacks them. Definition is
// always a string, RelatedModels always an array, and Relationships is
// always present (null when the source has none).
type PublicModel struct {
	Code           *string         `json:"code,omitempty"`
	Name           *string         `json:"name,omitempty"`
	Definition     string          `json:"definition"`
	Priority       json.RawMessage `json:"priority,omitempty"`
	Transformation *string         `json:"transformation,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Example        *string         `json:"example,omitempty"`
	RelatedModels  []string        `json:"related_models"`
	Status         *string         `json:"status,omitempty"`
	Version        json.RawMessage `json:"version,omitempty"`
	Relationships  json.RawMessage `json:"relationships"`
}

// Value dereferences an optional string, treating absence as "".
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// String returns a pointer to s, for building records in code.
func String(s string) *string {
	return &s
}
