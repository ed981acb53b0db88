package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Location decides which calendar day "today" is.
	Location *time.Location

	// AssessmentCacheSize bounds the composite assessment LRU. Zero disables caching.
	AssessmentCacheSize int

	// Batch assessment pipeline (feature-flagged via KAFKA_ENABLED).
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration

	// Tracing export (feature-flagged via OTEL_ENABLED).
	OTelEnabled  bool
	OTelEndpoint string
}

// envVars is the part of the configuration that maps one-to-one onto variables.
type envVars struct {
	HTTPAddr            string `env:"HTTP_ADDR"             envDefault:":8080"`
	LogLevel            string `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string `env:"LOG_FORMAT"            envDefault:"json"`
	Timezone            string `env:"TIMEZONE"              envDefault:"UTC"`
	AssessmentCacheSize int    `env:"ASSESSMENT_CACHE_SIZE" envDefault:"1000"`
	KafkaEnabled        bool   `env:"KAFKA_ENABLED"         envDefault:"false"`
	KafkaSourceTopic    string `env:"KAFKA_SOURCE_TOPIC"    envDefault:"assessment-requests"`
	KafkaSinkTopic      string `env:"KAFKA_SINK_TOPIC"      envDefault:"risk-assessments"`
	KafkaGroupID        string `env:"KAFKA_GROUP_ID"        envDefault:"weather-guardians"`
	OTelEnabled         bool   `env:"OTEL_ENABLED"          envDefault:"false"`
	OTelEndpoint        string `env:"OTEL_ENDPOINT"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	var vars envVars
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(vars.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", vars.Timezone, err)
	}

	cfg := &Config{
		HTTPAddr:            vars.HTTPAddr,
		LogLevel:            vars.LogLevel,
		LogFormat:           vars.LogFormat,
		ShutdownTimeout:     shutdownTimeout,
		Location:            loc,
		AssessmentCacheSize: vars.AssessmentCacheSize,

		KafkaEnabled:       vars.KafkaEnabled,
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   vars.KafkaSourceTopic,
		KafkaSinkTopic:     vars.KafkaSinkTopic,
		KafkaGroupID:       vars.KafkaGroupID,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		OTelEnabled:  vars.OTelEnabled,
		OTelEndpoint: vars.OTelEndpoint,
	}

	if cfg.AssessmentCacheSize < 0 {
		return nil, errors.New("ASSESSMENT_CACHE_SIZE must not be negative")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
		}
	}
	if cfg.OTelEnabled && cfg.OTelEndpoint == "" {
		return nil, errors.New("OTEL_ENABLED is true but OTEL_ENDPOINT is not set")
	}

	return cfg, nil
}
