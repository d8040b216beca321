package shipfunk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tournevent/shipfunk/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// transport performs the single synchronous round trip every operation
// ends with. It is shared by the order-scoped and account-scoped
// clients; only the request URL differs between the two.
type transport struct {
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
	metrics    *telemetry.Metrics
}

func newTransport(httpClient *http.Client, logger *otelzap.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) *transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &transport{
		httpClient: httpClient,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// send posts the content document to reqURL and unwraps the reply.
// Each top-level content key is serialized as one JSON string and the
// resulting pairs are form-encoded. The service encodes quotes as %22;
// url-native encoding of single quotes (%27) is rejected by it, which
// is why the values go through encoding/json first.
func (t *transport) send(ctx context.Context, operation, reqURL, apikey string, content map[string]any) (any, error) {
	start := time.Now()

	if t.tracer != nil {
		var span trace.Span
		ctx, span = t.tracer.Start(ctx, "shipfunk."+operation,
			trace.WithAttributes(attribute.String("shipfunk.operation", operation)))
		defer span.End()
	}

	form := url.Values{}
	for key, document := range content {
		encoded, err := json.Marshal(document)
		if err != nil {
			t.record(operation, "encode_error", start)
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		form.Set(key, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		t.record(operation, "transport_error", start)
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", apikey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	t.logger.Debug("Sending Shipfunk request",
		zap.String("operation", operation),
		zap.String("url", reqURL),
	)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Error("Shipfunk transport error", zap.String("operation", operation), zap.Error(err))
		t.record(operation, "transport_error", start)
		return nil, err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.record(operation, "decode_error", start)
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	result, ok := body["response"]
	if !ok {
		apiErr := &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
		t.logger.Error("Shipfunk reported failure",
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
		)
		t.record(operation, "remote_error", start)
		return nil, apiErr
	}

	t.record(operation, "ok", start)
	return result, nil
}

func (t *transport) record(operation, status string, start time.Time) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordRequest(operation, status, time.Since(start).Seconds())
}
