package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/data/ufo-sightings-transformed.csv"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATASET_PATH", testPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testPath, cfg.DatasetPath)
	assert.Equal(t, "ufo", cfg.DatasetKind)
	assert.Equal(t, 2023, cfg.ReferenceYear)
	assert.True(t, cfg.SanitizeDescription)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.SinkEnabled())
	assert.Equal(t, "derived-records", cfg.KafkaSinkTopic)
	assert.Empty(t, cfg.PushgatewayURL)

	r := cfg.Report
	assert.Empty(t, r.Country)
	assert.Empty(t, r.Shape)
	assert.Nil(t, r.MinHours)
	assert.Nil(t, r.MaxHours)
	assert.Equal(t, "millennium", r.DurationScale)
	assert.Equal(t, "ufo_shape", r.Split)
	assert.Equal(t, "millennium", r.ScatterScale)
	assert.Equal(t, "country", r.ScatterColor)
	assert.Empty(t, r.MapShape)
	assert.Equal(t, "duration_secs", r.MapSize)
	assert.Nil(t, r.Brands)
	assert.Nil(t, r.YearMin)
	assert.Nil(t, r.YearMax)
	assert.Equal(t, 20, r.Bins)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "-")
	t.Setenv("DATASET_KIND", "vehicles")
	t.Setenv("REFERENCE_YEAR", "2024")
	t.Setenv("SANITIZE_DESCRIPTION", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")
	t.Setenv("REPORT_COUNTRY", "United States")
	t.Setenv("REPORT_SHAPE", "Disk")
	t.Setenv("REPORT_MIN_HOURS", "0.5")
	t.Setenv("REPORT_MAX_HOURS", "12")
	t.Setenv("REPORT_DURATION_SCALE", "hour")
	t.Setenv("REPORT_SPLIT", "season")
	t.Setenv("REPORT_BRANDS", "ford,,toyota")
	t.Setenv("REPORT_YEAR_MIN", "2010")
	t.Setenv("REPORT_YEAR_MAX", "2018")
	t.Setenv("REPORT_BINS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "-", cfg.DatasetPath)
	assert.Equal(t, "vehicles", cfg.DatasetKind)
	assert.Equal(t, 2024, cfg.ReferenceYear)
	assert.False(t, cfg.SanitizeDescription)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SinkEnabled())
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)

	r := cfg.Report
	assert.Equal(t, "United States", r.Country)
	assert.Equal(t, "Disk", r.Shape)
	require.NotNil(t, r.MinHours)
	assert.Equal(t, 0.5, *r.MinHours)
	require.NotNil(t, r.MaxHours)
	assert.Equal(t, 12.0, *r.MaxHours)
	assert.Equal(t, "hour", r.DurationScale)
	assert.Equal(t, "season", r.Split)
	assert.Equal(t, []string{"ford", "toyota"}, r.Brands)
	require.NotNil(t, r.YearMin)
	assert.Equal(t, 2010, *r.YearMin)
	require.NotNil(t, r.YearMax)
	assert.Equal(t, 2018, *r.YearMax)
	assert.Equal(t, 8, r.Bins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"zero batch size", "BATCH_SIZE", "0"},
		{"batch size too large", "BATCH_SIZE", "9999"},
		{"reference year", "REFERENCE_YEAR", "last year"},
		{"zero reference year", "REFERENCE_YEAR", "0"},
		{"sanitize flag", "SANITIZE_DESCRIPTION", "sometimes"},
		{"dataset kind", "DATASET_KIND", "boats"},
		{"min hours", "REPORT_MIN_HOURS", "an hour"},
		{"max hours", "REPORT_MAX_HOURS", "x"},
		{"year min", "REPORT_YEAR_MIN", "2010.5"},
		{"year max", "REPORT_YEAR_MAX", "soon"},
		{"bins", "REPORT_BINS", "-3"},
		{"pushgateway without scheme", "PUSHGATEWAY_URL", "pushgateway:9091"},
		{"pushgateway not a url", "PUSHGATEWAY_URL", "http://[::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATASET_PATH", testPath)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MissingDatasetPath(t *testing.T) {
	t.Setenv("DATASET_PATH", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_PATH")
}
