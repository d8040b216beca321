package shipfunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipfunk/pkg/shipfunk"
)

func newClient(cfg shipfunk.Config) *shipfunk.Client {
	return shipfunk.New(cfg, nil, nil)
}

func TestNew_Defaults(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "test_apikey", OrderID: "1234"})

	assert.Equal(t, "FI", client.Language())
	assert.Equal(t, "EUR", client.Currency())
	assert.Equal(t, shipfunk.DefaultEndpoint, client.Endpoint())
	assert.Equal(t, "test_apikey", client.APIKey())
	assert.Equal(t, "1234", client.OrderID())
}

func TestNew_InvalidCodesFallBackSilently(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k", Language: "suomi", Currency: "eurot"})
	assert.Equal(t, "FI", client.Language())
	assert.Equal(t, "EUR", client.Currency())

	client = newClient(shipfunk.Config{APIKey: "k", Language: "f4", Currency: "er5"})
	assert.Equal(t, "FI", client.Language())
	assert.Equal(t, "EUR", client.Currency())
}

func TestNew_LowercaseCodesUppercased(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k", Language: "en", Currency: "sek"})
	assert.Equal(t, "EN", client.Language())
	assert.Equal(t, "SEK", client.Currency())
}

func TestClient_SetLanguage(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	require.NoError(t, client.SetLanguage("en"))
	assert.Equal(t, "EN", client.Language())

	// Unlike construction, assignment rejects bad codes.
	assert.ErrorIs(t, client.SetLanguage(""), shipfunk.ErrEmptyValue)
	assert.ErrorIs(t, client.SetLanguage("English"), shipfunk.ErrWrongLength)
	assert.ErrorIs(t, client.SetLanguage("f3"), shipfunk.ErrNotAlpha)
	assert.Equal(t, "EN", client.Language())
}

func TestClient_SetCurrency(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	require.NoError(t, client.SetCurrency("sek"))
	assert.Equal(t, "SEK", client.Currency())

	assert.ErrorIs(t, client.SetCurrency(""), shipfunk.ErrEmptyValue)
	assert.ErrorIs(t, client.SetCurrency("Euro"), shipfunk.ErrWrongLength)
	assert.ErrorIs(t, client.SetCurrency("er5"), shipfunk.ErrNotAlpha)
	assert.Equal(t, "SEK", client.Currency())
}

func TestClient_SetEndpointAndAPIKey(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	require.NoError(t, client.SetEndpoint("https://test.shipfunkservices.com/api/1.2/"))
	assert.Equal(t, "https://test.shipfunkservices.com/api/1.2/", client.Endpoint())
	assert.ErrorIs(t, client.SetEndpoint(""), shipfunk.ErrEmptyValue)

	require.NoError(t, client.SetAPIKey("fresh"))
	assert.Equal(t, "fresh", client.APIKey())
	assert.ErrorIs(t, client.SetAPIKey(""), shipfunk.ErrEmptyValue)
}

func TestClient_SetOrderID(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	require.NoError(t, client.SetOrderID("ORD-1"))
	assert.Equal(t, "ORD-1", client.OrderID())
	assert.ErrorIs(t, client.SetOrderID(""), shipfunk.ErrEmptyValue)
}

func TestClient_AddProduct(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	product, err := client.AddProduct("P1", 2.3)
	require.NoError(t, err)
	require.Len(t, client.Products(), 1)
	assert.Same(t, product, client.Products()[0])

	// Returned product stays mutable in place.
	require.NoError(t, product.SetAmount(4))
	assert.Equal(t, 4.0, client.Products()[0].Amount())

	_, err = client.AddProduct("P2", -1)
	assert.ErrorIs(t, err, shipfunk.ErrNotPositive)
	assert.Len(t, client.Products(), 1)
}

func TestClient_AddProduct_WithServices(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	product, err := client.AddProduct("P1", 2.3, map[string]any{"code": "fragile"})
	require.NoError(t, err)
	require.Len(t, product.AdditionalServices(), 1)
	assert.Equal(t, "fragile", product.AdditionalServices()[0]["code"])
}

func TestClient_Address(t *testing.T) {
	client := newClient(shipfunk.Config{APIKey: "k"})

	client.AddAddress(map[string]string{"country": "fi", "postal_code": "20100"})

	// Stored verbatim; only request resolution uppercases country.
	assert.Equal(t, "fi", client.AddressField("country"))
	assert.Equal(t, "20100", client.AddressField("postal_code"))
	assert.Empty(t, client.AddressField("unknown_key"))

	// Later values overwrite per key.
	client.AddAddress(map[string]string{"postal_code": "00100", "city": "Helsinki"})
	assert.Equal(t, "00100", client.AddressField("postal_code"))
	assert.Equal(t, "Helsinki", client.AddressField("city"))
	assert.Equal(t, "fi", client.AddressField("country"))
}
