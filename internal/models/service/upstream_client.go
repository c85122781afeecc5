package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

// DocumentSource retrieves the models document from wherever it lives
type DocumentSource interface {
	FetchDocument(ctx context.Context) (*domain.Document, error)
}

// UpstreamClient fetches the models document over HTTP
type UpstreamClient struct {
	url     string
	client  *http.Client
	metrics *Metrics
}

// NewUpstreamClient creates a new upstream client. A nil metrics value
// gets a private set of counters.
func NewUpstreamClient(url string, timeout time.Duration, metrics *Metrics) *UpstreamClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	return &UpstreamClient{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

// HTTPClient exposes the underlying client so tests can intercept transport
func (c *UpstreamClient) HTTPClient() *http.Client {
	return c.client
}

// FetchDocument performs one GET against the configured URL and decodes it
func (c *UpstreamClient) FetchDocument(ctx context.Context) (*domain.Document, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	doc, err := c.fetch(ctx)
	c.metrics.recordUpstreamCall(time.Since(start), err)
	if err != nil {
		logger.LogError("fetch_document", err)
		return nil, err
	}

	logger.LogInfof("fetch_document", "fetched %d models in %s", len(doc.Models), time.Since(start))
	return doc, nil
}

func (c *UpstreamClient) fetch(ctx context.Context) (*domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var doc domain.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if doc.Models == nil {
		return nil, errors.New("document has no models array")
	}
	return &doc, nil
}
