package service

import "time"

const (
	// DocumentTTL is how long a fetched document is served without asking upstream again
	DocumentTTL = time.Hour

	// DefaultTimeout bounds a single upstream fetch
	DefaultTimeout = 30 * time.Second

	// DefinitionPreviewLength is the rune count taken from description when definition is missing
	DefinitionPreviewLength = 80
)
