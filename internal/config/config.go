package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the CLI.
type Config struct {
	// Shipfunk
	APIKey   string `envconfig:"SHIPFUNK_API_KEY"`
	OrderID  string `envconfig:"SHIPFUNK_ORDER_ID"`
	Endpoint string `envconfig:"SHIPFUNK_ENDPOINT" default:"https://shipfunkservices.com/api/1.2/"`
	Language string `envconfig:"SHIPFUNK_LANGUAGE" default:"FI"`
	Currency string `envconfig:"SHIPFUNK_CURRENCY" default:"EUR"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipfunk-cli"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
