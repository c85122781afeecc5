package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int32
	docs  []*domain.Document
	errs  []error
	gate  chan struct{}
}

func (s *fakeSource) FetchDocument(ctx context.Context) (*domain.Document, error) {
	n := atomic.AddInt32(&s.calls, 1)
	if s.gate != nil {
		<-s.gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := int(n) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.docs) {
		return s.docs[i], nil
	}
	return &domain.Document{Models: []domain.ModelRecord{}}, nil
}

func (s *fakeSource) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CacheEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.CacheEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func docWith(codes ...string) *domain.Document {
	doc := &domain.Document{Models: []domain.ModelRecord{}}
	for _, c := range codes {
		doc.Models = append(doc.Models, domain.ModelRecord{Code: domain.String(c)})
	}
	return doc
}

func TestDocumentCache_HitWithinTTL(t *testing.T) {
	clock := newFakeClock()
	src := &fakeSource{docs: []*domain.Document{docWith("T1")}}
	cache := NewDocumentCache(src, WithClock(clock.Now))
	ctx := context.Background()

	first, err := cache.GetDocument(ctx)
	require.NoError(t, err)

	clock.Advance(DocumentTTL - time.Second)
	second, err := cache.GetDocument(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.Calls())

	snap := cache.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

func TestDocumentCache_RefreshAfterTTL(t *testing.T) {
	clock := newFakeClock()
	src := &fakeSource{docs: []*domain.Document{docWith("T1"), docWith("T1", "T2")}}
	cache := NewDocumentCache(src, WithClock(clock.Now))
	ctx := context.Background()

	_, err := cache.GetDocument(ctx)
	require.NoError(t, err)

	clock.Advance(DocumentTTL)
	doc, err := cache.GetDocument(ctx)
	require.NoError(t, err)

	assert.Len(t, doc.Models, 2)
	assert.Equal(t, 2, src.Calls())

	age, ok := cache.Age()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), age)
}

func TestDocumentCache_StaleOnError(t *testing.T) {
	clock := newFakeClock()
	src := &fakeSource{
		docs: []*domain.Document{docWith("T1")},
		errs: []error{nil, errors.New("upstream returned status 503"), errors.New("timeout")},
	}
	pub := &recordingPublisher{}
	cache := NewDocumentCache(src, WithClock(clock.Now), WithPublisher(pub))
	ctx := context.Background()

	first, err := cache.GetDocument(ctx)
	require.NoError(t, err)

	clock.Advance(2 * DocumentTTL)
	stale, err := cache.GetDocument(ctx)
	require.NoError(t, err)
	assert.Same(t, first, stale)

	// Arbitrarily old copies are still served, and each call retries upstream.
	clock.Advance(30 * 24 * time.Hour)
	stale, err = cache.GetDocument(ctx)
	require.NoError(t, err)
	assert.Same(t, first, stale)
	assert.Equal(t, 3, src.Calls())

	age, ok := cache.Age()
	assert.True(t, ok)
	assert.Equal(t, 2*DocumentTTL+30*24*time.Hour, age)

	assert.Equal(t, int64(2), cache.Metrics().Snapshot().StaleServes)
	assert.Equal(t, []domain.EventType{
		domain.EventDocumentRefreshed,
		domain.EventStaleServed,
		domain.EventStaleServed,
	}, pub.Types())
}

func TestDocumentCache_FailureWithoutHistory(t *testing.T) {
	src := &fakeSource{errs: []error{errors.New("connection refused")}}
	cache := NewDocumentCache(src)

	doc, err := cache.GetDocument(context.Background())
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Contains(t, err.Error(), "connection refused")

	_, ok := cache.Age()
	assert.False(t, ok)
}

func TestDocumentCache_RecoversAfterInitialFailure(t *testing.T) {
	src := &fakeSource{
		errs: []error{errors.New("down")},
		docs: []*domain.Document{nil, docWith("T1")},
	}
	cache := NewDocumentCache(src)
	ctx := context.Background()

	_, err := cache.GetDocument(ctx)
	require.ErrorIs(t, err, domain.ErrFetchFailure)

	doc, err := cache.GetDocument(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Models, 1)
}

func TestDocumentCache_ConcurrentMissesShareOneFetch(t *testing.T) {
	src := &fakeSource{
		docs: []*domain.Document{docWith("T1")},
		gate: make(chan struct{}),
	}
	cache := NewDocumentCache(src)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*domain.Document, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := cache.GetDocument(context.Background())
			assert.NoError(t, err)
			results[i] = doc
		}(i)
	}

	require.Eventually(t, func() bool { return src.Calls() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, 1, src.Calls())
	for _, doc := range results {
		assert.Same(t, results[0], doc)
	}
}

func TestDocumentCache_WaiterContextCancelled(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	cache := NewDocumentCache(src)
	defer close(src.gate)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cache.GetDocument(ctx)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDocumentCache_PublishErrorIsIgnored(t *testing.T) {
	src := &fakeSource{docs: []*domain.Document{docWith("T1")}}
	pub := &recordingPublisher{err: errors.New("redis down")}
	cache := NewDocumentCache(src, WithPublisher(pub))

	doc, err := cache.GetDocument(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Models, 1)

	require.Len(t, pub.events, 1)
	assert.NotEmpty(t, pub.events[0].ID)
	assert.Equal(t, 1, pub.events[0].ModelCount)
}
