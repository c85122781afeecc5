package domain

import "errors"

var (
	ErrFetchFailure  = errors.New("failed to fetch models document")
	ErrModelNotFound = errors.New("model not found")
)
