package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultIngestWorkers = 4

type IngestInput struct {
	Truncate bool
	DryRun   bool
	Workers  int
}

type IngestTableResult struct {
	Table   string `json:"table"`
	Batches int    `json:"batches"`
	Rows    int    `json:"rows"`
}

type IngestResult struct {
	Source     string              `json:"source"`
	DryRun     bool                `json:"dry_run"`
	Truncated  bool                `json:"truncated"`
	Tables     []IngestTableResult `json:"tables"`
	Batches    int                 `json:"batches"`
	Failed     int                 `json:"failed"`
	DurationMs int64               `json:"duration_ms"`
}

// IngestService copies a snapshot from one source into a batch sink.
type IngestService struct {
	source dataset.Loader
	sink   dataset.Sink
	logger *logging.Logger
}

func NewIngestService(source dataset.Loader, sink dataset.Sink, logger *logging.Logger) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{source: source, sink: sink, logger: logger}
}

// Run loads the source, plans the batches and writes them on a bounded
// worker pool. The first failed batch is returned after all workers finish.
func (s *IngestService) Run(ctx context.Context, input IngestInput) (_ IngestResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run",
		attribute.Bool("ingest.truncate", input.Truncate),
		attribute.Bool("ingest.dry_run", input.DryRun),
	)
	defer func() { endSpan(span, err) }()

	started := time.Now()
	workers := input.Workers
	if workers <= 0 {
		workers = DefaultIngestWorkers
	}

	snapshot, err := s.source.Load(ctx)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: load source: %w", ErrDependencyUnavailable, err)
	}
	plan, err := s.sink.Plan(snapshot)
	if err != nil {
		return IngestResult{}, fmt.Errorf("plan batches: %w", err)
	}

	result := IngestResult{
		Source:  snapshot.Source,
		DryRun:  input.DryRun,
		Tables:  summarizeBatches(plan),
		Batches: len(plan),
	}
	if input.DryRun {
		result.DurationMs = time.Since(started).Milliseconds()
		s.logger.InfoContext(ctx, "ingest dry run", "source", result.Source, "batches", result.Batches)
		return result, nil
	}

	if input.Truncate {
		if err := s.sink.Truncate(ctx); err != nil {
			return IngestResult{}, fmt.Errorf("truncate sink: %w", err)
		}
		result.Truncated = true
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return IngestResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workersWG sync.WaitGroup
		failed    atomic.Int32
		firstErr  error
		errOnce   sync.Once
	)
	for _, batch := range plan {
		batch := batch
		workersWG.Add(1)
		if err := pool.Submit(func() {
			defer workersWG.Done()
			if ctx.Err() != nil {
				failed.Add(1)
				errOnce.Do(func() { firstErr = ctx.Err() })
				return
			}
			if err := s.sink.Write(ctx, batch); err != nil {
				failed.Add(1)
				errOnce.Do(func() { firstErr = err })
				s.logger.WarnContext(ctx, "ingest batch failed", "table", batch.Table, "rows", batch.Rows, "error", err)
			}
		}); err != nil {
			workersWG.Done()
			workersWG.Wait()
			return IngestResult{}, fmt.Errorf("submit batch to worker pool: %w", err)
		}
	}
	workersWG.Wait()

	result.Failed = int(failed.Load())
	result.DurationMs = time.Since(started).Milliseconds()
	span.SetAttributes(
		attribute.Int("ingest.batches", result.Batches),
		attribute.Int("ingest.failed", result.Failed),
	)
	if firstErr != nil {
		return result, fmt.Errorf("write %d of %d batches failed: %w", result.Failed, result.Batches, firstErr)
	}

	s.logger.InfoContext(ctx, "ingest completed",
		"source", result.Source,
		"batches", result.Batches,
		"truncated", result.Truncated,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func summarizeBatches(plan []dataset.Batch) []IngestTableResult {
	out := make([]IngestTableResult, 0, 3)
	index := make(map[string]int, 3)
	for _, batch := range plan {
		i, ok := index[batch.Table]
		if !ok {
			i = len(out)
			index[batch.Table] = i
			out = append(out, IngestTableResult{Table: batch.Table})
		}
		out[i].Batches++
		out[i].Rows += batch.Rows
	}
	return out
}
