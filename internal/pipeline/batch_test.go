package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// newEchoFactory returns a pipeline factory whose single step records
// the normalized URL, optionally failing for URLs containing failSubstr.
func newEchoFactory(failSubstr string) func() *Pipeline {
	return func() *Pipeline {
		p := New()
		p.AddStep(&mockStep{
			name: "echo",
			doFunc: func(_ context.Context, report *model.EnrichmentReport) error {
				if failSubstr != "" && strings.Contains(report.InputURL, failSubstr) {
					return errors.New("refused")
				}
				report.NormalizedURL = "https://" + report.InputURL
				return nil
			},
		})
		return p
	}
}

// TestBatchProcessorProcessBatch tests concurrent batch enrichment.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("preserves input order in results", func(t *testing.T) {
		t.Parallel()

		urls := []string{"a.com", "b.com", "c.com", "d.com", "e.com"}
		bp := NewBatchProcessor(newEchoFactory(""), WithConcurrency(3))

		batch, err := bp.ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if batch.Total != len(urls) {
			t.Fatalf("got total %d, expected %d", batch.Total, len(urls))
		}
		for i, url := range urls {
			if batch.Rows[i] == nil || batch.Rows[i].InputURL != url {
				t.Errorf("row %d: got %v, expected input %q", i, batch.Rows[i], url)
			}
		}
	})

	t.Run("per-url failures do not abort the batch", func(t *testing.T) {
		t.Parallel()

		urls := []string{"good.com", "bad.example", "also-good.com"}
		bp := NewBatchProcessor(newEchoFactory("bad"))

		batch, err := bp.ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if batch.Succeeded != 2 {
			t.Errorf("got %d succeeded, expected 2", batch.Succeeded)
		}
		if batch.Failed != 1 {
			t.Errorf("got %d failed, expected 1", batch.Failed)
		}
		if batch.Rows[1].OK() {
			t.Error("expected the second row to carry the failure")
		}
		if batch.Rows[1].FailedStage != "echo" {
			t.Errorf("got failed stage %q, expected %q", batch.Rows[1].FailedStage, "echo")
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		const limit = 2
		var current, peak int64
		var mu sync.Mutex

		factory := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "count",
				doFunc: func(_ context.Context, _ *model.EnrichmentReport) error {
					n := atomic.AddInt64(&current, 1)
					mu.Lock()
					if n > peak {
						peak = n
					}
					mu.Unlock()
					defer atomic.AddInt64(&current, -1)
					return nil
				},
			})
			return p
		}

		urls := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
		bp := NewBatchProcessor(factory, WithConcurrency(limit))
		if _, err := bp.ProcessBatch(context.Background(), urls); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if peak > limit {
			t.Errorf("observed %d concurrent runs, expected at most %d", peak, limit)
		}
	})

	t.Run("empty input yields an empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(newEchoFactory(""))
		batch, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if batch.Total != 0 || len(batch.Rows) != 0 {
			t.Errorf("got %+v, expected an empty batch", batch)
		}
	})
}
