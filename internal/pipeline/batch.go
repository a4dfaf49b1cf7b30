package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// DefaultConcurrency is the batch worker limit when none is configured.
const DefaultConcurrency = 5

// BatchProcessor handles concurrent enrichment of multiple URLs.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-URL execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each URL.
	// We use a factory to ensure each run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	// Access is synchronized via mutex.
	results []*model.EnrichmentReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each URL to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak
// between runs and allows for per-run customization if needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch enriches multiple URLs concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each URL gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// A per-URL failure is recorded in that URL's report and never aborts
// the rest of the batch; the returned BatchReport keeps input order.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) (*model.BatchReport, error) {
	bp.logger.Info("starting batch enrichment",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now().UTC()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.EnrichmentReport, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				report := model.NewEnrichmentReport(url)
				report.Fail("batch", ctx.Err().Error())
				bp.mu.Lock()
				bp.results[i] = report
				bp.mu.Unlock()
				return ctx.Err()
			default:
			}

			bp.logger.Debug("enriching",
				"url", url,
				"index", i+1,
				"total", len(urls),
			)

			report := model.NewEnrichmentReport(url)
			pipeline := bp.pipelineFactory()

			// The error is recorded in the report; other URLs continue.
			_ = pipeline.Execute(ctx, report) //nolint:errcheck

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if !report.OK() {
				bp.logger.Warn("enrichment failed",
					"url", url,
					"stage", report.FailedStage,
					"error", report.Error,
				)
			}

			return nil
		})
	}

	err := g.Wait()

	batch := model.NewBatchReport(startTime, bp.results)
	bp.logger.Info("batch enrichment complete",
		"total_urls", batch.Total,
		"succeeded", batch.Succeeded,
		"failed", batch.Failed,
		"elapsed", batch.Duration,
	)

	return batch, err
}
