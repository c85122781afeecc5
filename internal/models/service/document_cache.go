package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

const flightKey = "document"

// EventPublisher receives cache events. Implementations must not block for long.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CacheEvent) error
}

type cacheEntry struct {
	document *domain.Document
	storedAt time.Time
}

// DocumentCache holds the last successfully fetched document.
//
// A stored document younger than the TTL is served without touching the
// source. Otherwise the source is asked again; concurrent misses share a
// single fetch. When the fetch fails, any stored document is served no
// matter how old it is. The entry is only ever replaced, never cleared.
type DocumentCache struct {
	source    DocumentSource
	ttl       time.Duration
	now       func() time.Time
	metrics   *Metrics
	publisher EventPublisher

	mu    sync.RWMutex
	entry *cacheEntry

	group singleflight.Group
}

type CacheOption func(*DocumentCache)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *DocumentCache) { c.now = now }
}

func WithMetrics(m *Metrics) CacheOption {
	return func(c *DocumentCache) {
		if m != nil {
			c.metrics = m
		}
	}
}

func WithPublisher(p EventPublisher) CacheOption {
	return func(c *DocumentCache) { c.publisher = p }
}

// NewDocumentCache creates an empty cache in front of source
func NewDocumentCache(source DocumentSource, opts ...CacheOption) *DocumentCache {
	c := &DocumentCache{
		source:  source,
		ttl:     DocumentTTL,
		now:     time.Now,
		metrics: &Metrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDocument returns the current document, fetching it when the stored
// copy is missing or expired. It fails with domain.ErrFetchFailure only
// when nothing has ever been stored and the fetch fails.
func (c *DocumentCache) GetDocument(ctx context.Context) (*domain.Document, error) {
	if doc, ok := c.fresh(); ok {
		c.metrics.recordCacheHit()
		return doc, nil
	}
	c.metrics.recordCacheMiss()

	// The shared fetch must not die with whichever request started it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		return c.refresh(fetchCtx)
	})

	var err error
	select {
	case res := <-ch:
		if res.Err == nil {
			return res.Val.(*domain.Document), nil
		}
		err = res.Err
	case <-ctx.Done():
		err = ctx.Err()
	}

	return c.fallback(ctx, err)
}

// Age reports how long ago the stored document was fetched
func (c *DocumentCache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return 0, false
	}
	return c.now().Sub(c.entry.storedAt), true
}

// Metrics returns the counters this cache records into
func (c *DocumentCache) Metrics() *Metrics {
	return c.metrics
}

func (c *DocumentCache) fresh() (*domain.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false
	}
	if c.now().Sub(c.entry.storedAt) >= c.ttl {
		return nil, false
	}
	return c.entry.document, true
}

func (c *DocumentCache) refresh(ctx context.Context) (*domain.Document, error) {
	// Another flight may have stored a document between our miss and now.
	if doc, ok := c.fresh(); ok {
		return doc, nil
	}

	doc, err := c.source.FetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	storedAt := c.now()
	c.mu.Lock()
	c.entry = &cacheEntry{document: doc, storedAt: storedAt}
	c.mu.Unlock()

	c.publish(ctx, domain.CacheEvent{
		Type:       domain.EventDocumentRefreshed,
		ModelCount: len(doc.Models),
		StoredAt:   storedAt,
	})
	return doc, nil
}

func (c *DocumentCache) fallback(ctx context.Context, cause error) (*domain.Document, error) {
	logger := NewLogger(ctx)

	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry == nil {
		logger.LogError("get_document", cause)
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, cause)
	}

	c.metrics.recordStaleServe()
	logger.LogWarnf("get_document", "refresh failed, serving document stored at %s: %v",
		entry.storedAt.UTC().Format(time.RFC3339), cause)

	c.publish(context.WithoutCancel(ctx), domain.CacheEvent{
		Type:       domain.EventStaleServed,
		ModelCount: len(entry.document.Models),
		StoredAt:   entry.storedAt,
		Error:      cause.Error(),
	})
	return entry.document, nil
}

func (c *DocumentCache) publish(ctx context.Context, event domain.CacheEvent) {
	if c.publisher == nil {
		return
	}
	event.ID = uuid.New().String()
	event.OccurredAt = c.now().UTC()
	if err := c.publisher.Publish(ctx, event); err != nil {
		NewLogger(ctx).LogWarnf("publish_event", "event=%s: %v", event.Type, err)
	}
}
