package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/dataset-explorer/internal/config"
	"github.com/couchcryptid/dataset-explorer/internal/dataset"
)

// Header keys attached to every published record.
const (
	HeaderDataset  = "dataset"
	HeaderLoadedAt = "loaded_at"
)

// Writer publishes derived table rows to the sink topic. It implements
// pipeline.BatchLoader.
type Writer struct {
	producer *kafkago.Writer
	logger   *slog.Logger
}

// NewWriter builds a producer for cfg.KafkaSinkTopic. Rows are hashed by
// record ID so a reload of the same file lands on the same partitions.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	producer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	if cfg.BatchSize > 0 {
		producer.BatchSize = cfg.BatchSize
	}
	return &Writer{producer: producer, logger: logger.With("topic", cfg.KafkaSinkTopic)}
}

// LoadBatch encodes every record before sending any, so a record that
// cannot be encoded fails the batch without a partial write.
func (w *Writer) LoadBatch(ctx context.Context, records []dataset.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(records))
	for _, r := range records {
		msg, err := serializeToMessage(r)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := w.producer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d records: %w", len(msgs), err)
	}
	w.logger.Debug("records published", "count", len(msgs), "first_row", records[0].Row)
	return nil
}

// Close flushes pending messages.
func (w *Writer) Close() error {
	return w.producer.Close()
}

func serializeToMessage(r dataset.Record) (kafkago.Message, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode record %s: %w", r.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(r.ID),
		Value: body,
		Headers: []kafkago.Header{
			{Key: HeaderDataset, Value: []byte(r.Dataset)},
			{Key: HeaderLoadedAt, Value: []byte(r.LoadedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
