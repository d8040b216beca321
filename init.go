package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tournevent/shipfunk/internal/config"
	"github.com/tournevent/shipfunk/internal/telemetry"
	"github.com/tournevent/shipfunk/pkg/shipfunk"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// bootstrap loads config and wires logging, tracing and metrics. The
// returned cleanup flushes the logger and the tracer.
func bootstrap(ctx context.Context) (*config.Config, *otelzap.Logger, trace.Tracer, func(context.Context), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var tracer trace.Tracer
	shutdown := func(context.Context) error { return nil }
	if cfg.OTELEnabled {
		tracer, shutdown, err = telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer", zap.Error(err))
			tracer = nil
			shutdown = func(context.Context) error { return nil }
		}
	}

	cleanup := func(ctx context.Context) {
		if err := shutdown(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return cfg, logger, tracer, cleanup, nil
}

// newOrderClient builds the order-scoped client from the environment.
// Without a configured order id a temporary one is generated; the real
// id is reported later through the status command's final-order-id.
func newOrderClient(ctx context.Context) (*shipfunk.Client, func(context.Context), error) {
	cfg, logger, tracer, cleanup, err := bootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}

	orderID := cfg.OrderID
	if orderID == "" {
		orderID = uuid.New().String()
		logger.Info("Using temporary order id", zap.String("order_id", orderID))
	}

	client := shipfunk.New(shipfunk.Config{
		APIKey:   cfg.APIKey,
		OrderID:  orderID,
		Language: cfg.Language,
		Currency: cfg.Currency,
		Endpoint: cfg.Endpoint,
		Metrics:  telemetry.NewMetrics(),
	}, logger, tracer)

	return client, cleanup, nil
}

// newAccountClient builds the account-scoped client from the environment.
func newAccountClient(ctx context.Context) (*shipfunk.AccountClient, func(context.Context), error) {
	cfg, logger, tracer, cleanup, err := bootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}

	account := shipfunk.NewAccountClient(shipfunk.Config{
		APIKey:   cfg.APIKey,
		Endpoint: cfg.Endpoint,
		Metrics:  telemetry.NewMetrics(),
	}, logger, tracer)

	return account, cleanup, nil
}

// parseProductSpec splits a code:weight[:amount] product flag.
func parseProductSpec(spec string) (code string, weight, amount float64, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", 0, 0, errors.New("expected code:weight[:amount]")
	}

	code = parts[0]
	weight, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("weight: %w", err)
	}
	if len(parts) == 3 {
		amount, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("amount: %w", err)
		}
	}
	return code, weight, amount, nil
}

// parseUserDocument decodes the --data JSON document.
func parseUserDocument(data string) (map[string]any, error) {
	if data == "" {
		return nil, errors.New("--data is required")
	}
	var user map[string]any
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("parsing --data: %w", err)
	}
	return user, nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
