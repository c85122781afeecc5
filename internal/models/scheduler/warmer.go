package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

// DocumentGetter is the part of the document cache the warmer needs
type DocumentGetter interface {
	GetDocument(ctx context.Context) (*domain.Document, error)
}

// Warmer periodically asks the cache for the document so that expired
// copies are refreshed before a request has to wait for upstream.
type Warmer struct {
	cache    DocumentGetter
	schedule string
	cron     *cron.Cron
}

func NewWarmer(cache DocumentGetter, schedule string) *Warmer {
	return &Warmer{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the job and starts the cron runner. An empty schedule
// leaves the warmer idle.
func (w *Warmer) Start() error {
	if w.schedule == "" {
		log.Println("Cache warmer disabled (empty schedule)")
		return nil
	}

	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to create warm job: %w", err)
	}

	log.Printf("Cache warmer started (schedule %q)", w.schedule)
	w.cron.Start()
	return nil
}

// Stop stops scheduling and returns a context that is done once running jobs finish
func (w *Warmer) Stop() context.Context {
	return w.cron.Stop()
}

// RunOnce performs a single warm pass
func (w *Warmer) RunOnce(ctx context.Context) {
	doc, err := w.cache.GetDocument(ctx)
	if err != nil {
		log.Printf("Cache warm failed: %v", err)
		return
	}
	log.Printf("Cache warm ok: %d models", len(doc.Models))
}
