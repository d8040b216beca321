// Package shipfunk provides a client for the Shipfunk logistics API.
//
// The order-scoped Client accumulates products and a customer address
// for one order and exposes one method per remote operation (price
// quotes, delivery options, pickup points, package cards, tracking
// codes, parcel management). AccountClient covers the account
// administration operations. Both build nested request documents,
// perform one synchronous POST per call and return the unwrapped
// "response" element of the reply.
package shipfunk

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tournevent/shipfunk/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultEndpoint is the production Shipfunk API base URL.
const DefaultEndpoint = "https://shipfunkservices.com/api/1.2/"

// Defaults applied when construction receives no (or invalid) codes.
const (
	DefaultLanguage = "FI"
	DefaultCurrency = "EUR"
)

// Config holds client configuration. Only APIKey is required up front;
// OrderID may stay empty until the first order-scoped call.
type Config struct {
	APIKey   string
	OrderID  string
	Language string // two letter ISO 639-1 code, default FI
	Currency string // three letter code, default EUR
	Endpoint string // default DefaultEndpoint

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	// Metrics, when set, receives one observation per API call.
	Metrics *telemetry.Metrics
}

// session carries the identity shared by both client variants and the
// dispatch capability they delegate to.
type session struct {
	apikey    string
	endpoint  string
	language  string
	currency  string
	logger    *otelzap.Logger
	transport *transport
}

func newSession(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) session {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	s := session{
		apikey:    cfg.APIKey,
		endpoint:  endpoint,
		logger:    logger,
		transport: newTransport(cfg.HTTPClient, logger, tracer, cfg.Metrics),
	}
	s.language = s.checkedCode(cfg.Language, 2, DefaultLanguage)
	s.currency = s.checkedCode(cfg.Currency, 3, DefaultCurrency)
	return s
}

// checkedCode validates a language or currency code at construction
// time. Invalid input falls back to the default silently; only the
// setters reject bad codes.
func (s *session) checkedCode(value string, length int, fallback string) string {
	if err := checkAlphaCode(value, length); err != nil {
		s.logger.Debug("Default code is used", zap.String("given", value), zap.String("default", fallback))
		value = fallback
	}
	return strings.ToUpper(value)
}

// Endpoint returns the API base URL.
func (s *session) Endpoint() string { return s.endpoint }

// SetEndpoint replaces the API base URL.
func (s *session) SetEndpoint(value string) error {
	if value == "" {
		return fmt.Errorf("endpoint: %w", ErrEmptyValue)
	}
	s.endpoint = value
	return nil
}

// APIKey returns the API key.
func (s *session) APIKey() string { return s.apikey }

// SetAPIKey replaces the API key.
func (s *session) SetAPIKey(value string) error {
	if value == "" {
		return fmt.Errorf("api key: %w", ErrEmptyValue)
	}
	s.apikey = value
	return nil
}

// Language returns the language code, always two uppercase letters.
func (s *session) Language() string { return s.language }

// SetLanguage replaces the language code. Unlike construction, an
// invalid code is rejected instead of falling back to the default.
func (s *session) SetLanguage(value string) error {
	if err := checkAlphaCode(value, 2); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	s.language = strings.ToUpper(value)
	return nil
}

// Currency returns the currency code, always three uppercase letters.
func (s *session) Currency() string { return s.currency }

// SetCurrency replaces the currency code. Unlike construction, an
// invalid code is rejected instead of falling back to the default.
func (s *session) SetCurrency(value string) error {
	if err := checkAlphaCode(value, 3); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	s.currency = strings.ToUpper(value)
	return nil
}
