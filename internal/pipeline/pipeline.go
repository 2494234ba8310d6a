package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/dataset-explorer/internal/dataset"
	"github.com/couchcryptid/dataset-explorer/internal/domain"
	"github.com/couchcryptid/dataset-explorer/internal/observability"
)

// Source opens the raw CSV stream for one load.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs.
	Name() string
}

// BatchLoader writes derived records to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []dataset.Record) error
}

// Pipeline reads a dataset, derives its table and optionally publishes the
// derived records.
type Pipeline struct {
	source    Source
	loader    BatchLoader
	opts      dataset.Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates a Pipeline. loader may be nil, in which case nothing is
// published.
func New(s Source, l BatchLoader, opts dataset.Options, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Pipeline{
		source:    s,
		loader:    l,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run loads the dataset once and publishes it. Load failures are fatal and
// returned as is; there is nothing to retry against a file. A cancelled
// context stops publishing between batches.
func (p *Pipeline) Run(ctx context.Context) (*dataset.Table, error) {
	p.logger.Info("pipeline started", "source", p.source.Name(), "dataset", p.opts.Variant.String())

	table, err := p.load(ctx)
	if err != nil {
		p.metrics.LoadErrors.Inc()
		p.logger.Error("dataset load failed", "source", p.source.Name(), "error", err)
		return nil, err
	}

	if p.loader == nil {
		return table, nil
	}
	if err := p.publish(ctx, table); err != nil {
		return table, err
	}
	return table, nil
}

func (p *Pipeline) load(ctx context.Context) (*dataset.Table, error) {
	start := time.Now()

	rc, err := p.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.source.Name(), err)
	}
	defer rc.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := dataset.Load(rc, p.opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.source.Name(), err)
	}

	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.metrics.RowsLoaded.WithLabelValues(table.Variant().String()).Add(float64(table.Len()))

	attrs := []any{
		"source", p.source.Name(),
		"rows", table.Len(),
		"columns", len(table.Columns()),
		"duration", time.Since(start),
	}
	if table.Has(domain.AgeColumn) {
		nulls, err := table.NullCount(domain.AgeColumn)
		if err != nil {
			return nil, err
		}
		p.metrics.NullAges.Add(float64(nulls))
		attrs = append(attrs, "null_ages", nulls)
	}
	p.logger.Info("dataset loaded", attrs...)
	return table, nil
}

// publish sends the table's records in batches of batchSize.
func (p *Pipeline) publish(ctx context.Context, table *dataset.Table) error {
	records := table.Records()
	published := 0
	for start := 0; start < len(records); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			p.logger.Info("publishing stopped", "reason", err, "published", published)
			return err
		}

		batch := records[start:min(start+p.batchSize, len(records))]
		if err := p.loader.LoadBatch(ctx, batch); err != nil {
			p.metrics.PublishErrors.Inc()
			p.logger.Error("publish batch failed", "error", err, "batch_size", len(batch), "published", published)
			return fmt.Errorf("publish records: %w", err)
		}

		p.metrics.BatchSize.Observe(float64(len(batch)))
		p.metrics.RecordsPublished.Add(float64(len(batch)))
		published += len(batch)
	}
	p.logger.Info("records published", "count", published)
	return nil
}
