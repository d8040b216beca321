package shipfunk

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// orderURLVariables selects real HTTP status codes, JSON requests and
// JSON responses for order-scoped operations.
const orderURLVariables = "/true/json/json/"

// Client is the order-scoped Shipfunk client. One instance serves one
// order at a time; products and address fields accumulate over its
// lifetime and feed the requests when a call does not supply its own.
// Instances are not safe for concurrent mutation.
type Client struct {
	session

	orderid  string
	products []*Product
	address  map[string]string
}

// New creates an order-scoped client. Invalid language or currency in
// cfg falls back to the default silently; the API key and order id are
// stored as given. A nil logger disables logging.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		session: newSession(cfg, logger, tracer),
		orderid: cfg.OrderID,
		address: make(map[string]string),
	}
}

// OrderID returns the order id.
func (c *Client) OrderID() string { return c.orderid }

// SetOrderID replaces the order id.
func (c *Client) SetOrderID(value string) error {
	if value == "" {
		return fmt.Errorf("order id: %w", ErrEmptyValue)
	}
	c.orderid = value
	return nil
}

// Products returns the registered product lines.
func (c *Client) Products() []*Product { return c.products }

// AddProduct constructs a product line, registers it and returns it so
// the caller can keep mutating it. Additional service descriptors may
// be attached right away.
func (c *Client) AddProduct(code string, weight float64, services ...map[string]any) (*Product, error) {
	product, err := NewProduct(code, weight)
	if err != nil {
		return nil, err
	}
	for _, service := range services {
		product.AddAdditionalService(service)
	}
	c.products = append(c.products, product)
	return product, nil
}

// productData serializes every registered product line.
func (c *Client) productData() []map[string]any {
	lines := make([]map[string]any, 0, len(c.products))
	for _, product := range c.products {
		lines = append(lines, product.Data())
	}
	return lines
}

// AddAddress merges customer address fields into the stored address.
// Values overwrite previous values per key. Recognized keys are
// first_name, last_name, street_address, postal_code, city, country,
// postal_box, company, phone and email.
func (c *Client) AddAddress(fields map[string]string) {
	c.logger.Debug("Merging address fields", zap.Int("count", len(fields)))
	for key, value := range fields {
		c.address[key] = value
	}
}

// AddressField returns one stored address value verbatim, or the empty
// string when the key has never been set.
func (c *Client) AddressField(key string) string {
	return c.address[key]
}

// customerData resolves the wanted address fields for a request. A key
// present in the per-call customer document wins over the stored
// address; empty values are dropped from the result and country is
// always uppercased regardless of source.
func (c *Client) customerData(keys []string, customer map[string]string) map[string]string {
	resolved := make(map[string]string, len(keys))

	for _, key := range keys {
		value, inCall := "", false
		if customer != nil {
			value, inCall = customer[key]
		}
		if !inCall {
			value = c.address[key]
		}
		if value == "" {
			continue
		}
		if key == "country" {
			value = strings.ToUpper(value)
		}
		resolved[key] = value
	}

	return resolved
}

// call dispatches one order-scoped operation. An empty urlVariables
// selects the default; the order id is appended unless addOrderID is
// false.
func (c *Client) call(ctx context.Context, operation string, content map[string]any, urlVariables string, addOrderID bool) (any, error) {
	if urlVariables == "" {
		urlVariables = orderURLVariables
	}

	reqURL := c.endpoint + operation + urlVariables
	if addOrderID {
		reqURL += c.orderid
	}

	return c.transport.send(ctx, operation, reqURL, c.apikey, content)
}

// checkCardDirection validates a package card direction. Accepted
// values are send, return and both.
func checkCardDirection(direction string) error {
	switch direction {
	case "send", "return", "both":
		return nil
	default:
		return fmt.Errorf("%q: %w", direction, ErrInvalidDirection)
	}
}

// fullAddressKeys is the complete customer field set resolved for
// delivery option and package card requests.
var fullAddressKeys = []string{
	"first_name", "last_name", "street_address", "postal_code", "city",
	"country", "postal_box", "company", "phone", "email",
}
