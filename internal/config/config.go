package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath         string
	DatasetKind         string
	ReferenceYear       int
	SanitizeDescription bool

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	BatchSize       int

	// An empty broker list disables the record sink.
	KafkaBrokers   []string
	KafkaSinkTopic string

	// Metrics are pushed here when the run ends. Empty skips the push.
	PushgatewayURL string

	Report ReportConfig
}

// ReportConfig holds the selection the report is computed for. Pointer
// fields are nil when the variable is unset.
type ReportConfig struct {
	Country       string
	Shape         string
	MinHours      *float64
	MaxHours      *float64
	DurationScale string
	Split         string

	ScatterScale string
	ScatterColor string
	MapShape     string
	MapSize      string

	Brands  []string
	YearMin *int
	YearMax *int

	Bins int
}

// SinkEnabled reports whether derived records are published to Kafka.
func (c *Config) SinkEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	referenceYear, err := parsePositiveInt("REFERENCE_YEAR", "2023")
	if err != nil {
		return nil, err
	}

	sanitize, err := strconv.ParseBool(sharedcfg.EnvOrDefault("SANITIZE_DESCRIPTION", "true"))
	if err != nil {
		return nil, errors.New("invalid SANITIZE_DESCRIPTION")
	}

	report, err := loadReport()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetPath:         os.Getenv("DATASET_PATH"),
		DatasetKind:         sharedcfg.EnvOrDefault("DATASET_KIND", "ufo"),
		ReferenceYear:       referenceYear,
		SanitizeDescription: sanitize,
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:     shutdownTimeout,
		BatchSize:           batchSize,
		KafkaBrokers:        sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic:      sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "derived-records"),
		PushgatewayURL:      os.Getenv("PUSHGATEWAY_URL"),
		Report:              report,
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	switch strings.ToLower(cfg.DatasetKind) {
	case "ufo", "sightings", "vehicles", "listings":
	default:
		return nil, fmt.Errorf("invalid DATASET_KIND %q", cfg.DatasetKind)
	}
	if cfg.SinkEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.PushgatewayURL != "" {
		u, err := url.Parse(cfg.PushgatewayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid PUSHGATEWAY_URL %q", cfg.PushgatewayURL)
		}
	}

	return cfg, nil
}

func loadReport() (ReportConfig, error) {
	r := ReportConfig{
		Country:       os.Getenv("REPORT_COUNTRY"),
		Shape:         os.Getenv("REPORT_SHAPE"),
		DurationScale: sharedcfg.EnvOrDefault("REPORT_DURATION_SCALE", "millennium"),
		Split:         sharedcfg.EnvOrDefault("REPORT_SPLIT", "ufo_shape"),
		ScatterScale:  sharedcfg.EnvOrDefault("REPORT_SCATTER_SCALE", "millennium"),
		ScatterColor:  sharedcfg.EnvOrDefault("REPORT_SCATTER_COLOR", "country"),
		MapShape:      os.Getenv("REPORT_MAP_SHAPE"),
		MapSize:       sharedcfg.EnvOrDefault("REPORT_MAP_SIZE", "duration_secs"),
		Brands:        splitList(os.Getenv("REPORT_BRANDS")),
	}

	var err error
	if r.MinHours, err = optionalFloat("REPORT_MIN_HOURS"); err != nil {
		return r, err
	}
	if r.MaxHours, err = optionalFloat("REPORT_MAX_HOURS"); err != nil {
		return r, err
	}
	if r.YearMin, err = optionalInt("REPORT_YEAR_MIN"); err != nil {
		return r, err
	}
	if r.YearMax, err = optionalInt("REPORT_YEAR_MAX"); err != nil {
		return r, err
	}
	if r.Bins, err = parsePositiveInt("REPORT_BINS", "20"); err != nil {
		return r, err
	}
	return r, nil
}

func parsePositiveInt(key, def string) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, def))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func optionalFloat(key string) (*float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &f, nil
}

func optionalInt(key string) (*int, error) {
	s := os.Getenv(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &n, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(s)
}
