package service

import (
	"context"
	"time"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

// ModelService runs the list and lookup pipelines over the cached document
type ModelService struct {
	cache *DocumentCache
}

// NewModelService creates a new ModelService
func NewModelService(cache *DocumentCache) *ModelService {
	return &ModelService{cache: cache}
}

// List returns the transformed models that satisfy q
func (s *ModelService) List(ctx context.Context, q Query) ([]domain.PublicModel, error) {
	doc, err := s.cache.GetDocument(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(TransformAll(doc), q), nil
}

// Get returns the model with the given code
func (s *ModelService) Get(ctx context.Context, code string) (domain.PublicModel, error) {
	doc, err := s.cache.GetDocument(ctx)
	if err != nil {
		return domain.PublicModel{}, err
	}
	raw, err := FindByCode(doc, code)
	if err != nil {
		return domain.PublicModel{}, err
	}
	return Transform(raw), nil
}

// CacheAge reports the age of the cached document, zero when nothing is cached
func (s *ModelService) CacheAge() time.Duration {
	age, _ := s.cache.Age()
	return age
}

// Cache exposes the underlying cache for health reporting and warming
func (s *ModelService) Cache() *DocumentCache {
	return s.cache
}
