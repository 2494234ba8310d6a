//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/dataset-explorer/internal/adapter/file"
	"github.com/couchcryptid/dataset-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/dataset-explorer/internal/config"
	"github.com/couchcryptid/dataset-explorer/internal/dataset"
	"github.com/couchcryptid/dataset-explorer/internal/observability"
	"github.com/couchcryptid/dataset-explorer/internal/pipeline"
)

const (
	sightingsFixture = "../dataset/testdata/ufo_sample.csv"
	listingsFixture  = "../dataset/testdata/vehicles_sample.csv"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type published struct {
	Record  dataset.Record
	Key     string
	Headers map[string]string
}

// readPublished reads n records from topic, failing if they do not arrive in time.
func readPublished(ctx context.Context, t *testing.T, broker, topic string, n int) []published {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out := make([]published, 0, n)
	for len(out) < n {
		msg, err := consumer.ReadMessage(readCtx)
		require.NoError(t, err, "read from sink topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		var rec dataset.Record
		require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal sink message")
		out = append(out, published{Record: rec, Key: string(msg.Key), Headers: headers})
	}
	return out
}

func runPipeline(ctx context.Context, t *testing.T, broker, topic, path string, variant dataset.Variant) *dataset.Table {
	t.Helper()
	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: topic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		file.NewSource(path),
		writer,
		dataset.Options{Variant: variant, Sanitize: true},
		discardLogger(),
		observability.NewMetricsForTesting(),
		2,
	)
	table, err := p.Run(ctx)
	require.NoError(t, err)
	return table
}

// TestPipelineSightingsToKafka loads the sightings fixture and verifies every
// derived row reaches the sink topic with its dataset headers.
func TestPipelineSightingsToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, "sightings")

	table := runPipeline(ctx, t, broker, "sightings", sightingsFixture, dataset.Sightings)
	require.Equal(t, 6, table.Len())

	msgs := readPublished(ctx, t, broker, "sightings", table.Len())
	want := table.Records()
	for i, m := range msgs {
		assert.Equal(t, "sightings", m.Headers["dataset"])
		_, err := time.Parse(time.RFC3339, m.Headers["loaded_at"])
		assert.NoError(t, err, "loaded_at should be valid RFC3339")

		assert.Equal(t, want[i].ID, m.Key)
		assert.Equal(t, want[i].ID, m.Record.ID)
		assert.Equal(t, i, m.Record.Row)
		assert.Contains(t, m.Record.Values, "duration_hours")
		assert.Contains(t, m.Record.Values, "age")
	}
}

func TestPipelineListingsToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, "listings")

	table := runPipeline(ctx, t, broker, "listings", listingsFixture, dataset.Listings)

	msgs := readPublished(ctx, t, broker, "listings", table.Len())
	require.Len(t, msgs, table.Len())
	for _, m := range msgs {
		assert.Equal(t, "listings", m.Headers["dataset"])
		assert.Equal(t, "listings", m.Record.Dataset)
		assert.Contains(t, m.Record.Values, "brand")
		assert.Contains(t, m.Record.Values, "type")
	}
}
