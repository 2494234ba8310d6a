package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/dataset-explorer/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/dataset-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/dataset-explorer/internal/config"
	"github.com/couchcryptid/dataset-explorer/internal/dataset"
	"github.com/couchcryptid/dataset-explorer/internal/observability"
	"github.com/couchcryptid/dataset-explorer/internal/pipeline"
	"github.com/couchcryptid/dataset-explorer/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	runErr := run(cfg, logger, metrics)

	if cfg.PushgatewayURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := observability.Push(ctx, cfg.PushgatewayURL, cfg.DatasetKind, prometheus.DefaultGatherer); err != nil {
			logger.Error("metrics push failed", "error", err)
		} else {
			logger.Info("metrics pushed", "url", cfg.PushgatewayURL)
		}
		cancel()
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// run loads the dataset, publishes its records when the sink is enabled and
// writes the report to stdout.
func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	variant, err := dataset.ParseVariant(cfg.DatasetKind)
	if err != nil {
		return fmt.Errorf("invalid dataset kind: %w", err)
	}
	sel, err := selectionFromConfig(cfg.Report)
	if err != nil {
		return fmt.Errorf("invalid report selection: %w", err)
	}

	var loader pipeline.BatchLoader
	if cfg.SinkEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loader = writer
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	opts := dataset.Options{
		Variant:       variant,
		ReferenceYear: cfg.ReferenceYear,
		Sanitize:      cfg.SanitizeDescription,
	}
	p := pipeline.New(file.NewSource(cfg.DatasetPath), loader, opts, logger, metrics, cfg.BatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	type result struct {
		table *dataset.Table
		err   error
	}
	done := make(chan result, 1)
	go func() {
		table, err := p.Run(ctx)
		done <- result{table, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		select {
		case res = <-done:
		case <-time.After(cfg.ShutdownTimeout):
			return errors.New("pipeline did not stop before the shutdown timeout")
		}
	}
	if res.err != nil {
		return fmt.Errorf("pipeline: %w", res.err)
	}

	r, err := report.Build(res.table, sel)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "rows", r.TotalRows, "filtered_rows", r.FilteredRows)
	return nil
}
