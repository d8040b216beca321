package shipfunk

import (
	"context"
	"fmt"
)

// PriceParams are the optional per-call values for GetPrice. Products
// given here replace the registered product lines; Customer fields win
// over the stored address.
type PriceParams struct {
	Products []map[string]any
	Customer map[string]string
}

// GetPrice returns the minimum and maximum prices of the delivery,
// without the actual delivery options. Falls back to the registered
// products and stored address when params does not supply them; fails
// when no product lines are available from either source.
func (c *Client) GetPrice(ctx context.Context, params *PriceParams) (any, error) {
	var lines []map[string]any
	var customer map[string]string
	if params != nil {
		lines = params.Products
		customer = params.Customer
	}
	if lines == nil {
		lines = c.productData()
	}
	if len(lines) == 0 {
		return nil, ErrNoProducts
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"language": c.language,
				"monetary": map[string]any{
					"currency": c.currency,
				},
				"products": lines,
			},
			"customer": c.customerData([]string{"country", "postal_code"}, customer),
		},
	}

	return c.call(ctx, "get_price", map[string]any{"sf_get_price": data}, "", true)
}

// DeliveryOptionsParams are the optional per-call values for
// GetDeliveryOptions. A non-nil Order document is sent as given and
// replaces the one built from client state; Value injects the total
// monetary value of the order into the built document.
type DeliveryOptionsParams struct {
	Order    map[string]any
	Value    *float64
	Customer map[string]string
}

// GetDeliveryOptions returns the delivery options suitable for the
// accumulated shopping basket and customer info. Product line
// emptiness is not checked here; the service rejects what it must.
func (c *Client) GetDeliveryOptions(ctx context.Context, params *DeliveryOptionsParams) (any, error) {
	var customer map[string]string
	var order map[string]any
	if params != nil {
		customer = params.Customer
		order = params.Order
	}

	if order == nil {
		monetary := map[string]any{"currency": c.currency}
		if params != nil && params.Value != nil {
			monetary["value"] = *params.Value
		}
		order = map[string]any{
			"language": c.language,
			"monetary": monetary,
			"products": c.productData(),
		}
	}

	data := map[string]any{
		"query": map[string]any{
			"order":    order,
			"customer": c.customerData(fullAddressKeys, customer),
		},
	}

	return c.call(ctx, "get_delivery_options", map[string]any{"sf_get_delivery_options": data}, "", true)
}

// PickupsParams are the values for GetPickups. CarrierCode is
// mandatory; ReturnCount defaults to 20.
type PickupsParams struct {
	CarrierCode string
	ReturnCount int
	Customer    map[string]string
}

// GetPickups returns the pickup points for the chosen transport
// company and delivery option. Postal code and country must resolve
// from either the call parameters or the stored address.
func (c *Client) GetPickups(ctx context.Context, params *PickupsParams) (any, error) {
	if params == nil || params.CarrierCode == "" {
		return nil, ErrMissingCarrierCode
	}

	returnCount := params.ReturnCount
	if returnCount == 0 {
		returnCount = 20
	}

	customer := c.customerData([]string{"postal_code", "country"}, params.Customer)
	for _, key := range []string{"postal_code", "country"} {
		if _, ok := customer[key]; !ok {
			return nil, fmt.Errorf("%s: %w", key, ErrMissingAddressField)
		}
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"carriercode":  params.CarrierCode,
				"language":     c.language,
				"return_count": returnCount,
			},
			"customer": map[string]any{
				"postal_code": customer["postal_code"],
				"country":     customer["country"],
			},
		},
	}

	return c.call(ctx, "get_pickups", map[string]any{"sf_get_pickups": data}, "", true)
}

// SendSelectedDelivery reports the delivery option the customer chose,
// which the service needs to create the correct package cards. The
// selected option document carries orderid, carriercode,
// calculated_price, customer_price and optionally pickupid and
// return_prices.
func (c *Client) SendSelectedDelivery(ctx context.Context, selectedOption map[string]any) (any, error) {
	if len(selectedOption) == 0 {
		return nil, fmt.Errorf("selected option: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"selected_option": selectedOption,
			},
		},
	}

	return c.call(ctx, "selected_delivery", map[string]any{"sf_selected_delivery": data}, "", true)
}

// SetOrderStatus sets the order status, "placed" or "cancelled".
// finalOrderID carries the real order id when a temporary one was used
// before the order was paid.
func (c *Client) SetOrderStatus(ctx context.Context, status, finalOrderID string) (any, error) {
	switch status {
	case "placed", "cancelled":
	default:
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"status":        status,
				"final_orderid": finalOrderID,
			},
		},
	}

	return c.call(ctx, "set_order_status", map[string]any{"sf_set_order_status": data}, "", true)
}

// CustomerDetailsParams are the values for SetCustomerDetails. The
// Customer document is sent verbatim; a ReturnCards of 1 asks the
// service to return the updated package cards.
type CustomerDetailsParams struct {
	ReturnCards int
	Customer    map[string]string
}

// SetCustomerDetails updates the customer details on the order. Only
// the fields present in the document are updated on the service side.
func (c *Client) SetCustomerDetails(ctx context.Context, params *CustomerDetailsParams) (any, error) {
	if params == nil || params.Customer == nil {
		return nil, fmt.Errorf("customer: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"return_cards": params.ReturnCards,
			},
			"customer": params.Customer,
		},
	}

	return c.call(ctx, "set_customer_details", map[string]any{"sf_set_customer_details": data}, "", true)
}

// PackageCardsCreateParams are the values for CreatePackageCards. The
// Order document carries return_cards, sendmail, send_edi, the
// package_card layout options, additional services and parcels;
// Customer fields win over the stored address.
type PackageCardsCreateParams struct {
	Order    map[string]any
	Customer map[string]string
}

// CreatePackageCards creates the package cards and tracking codes for
// the order previously described to the service.
func (c *Client) CreatePackageCards(ctx context.Context, params *PackageCardsCreateParams) (any, error) {
	if params == nil || params.Order == nil {
		return nil, fmt.Errorf("order: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"order":    params.Order,
			"customer": c.customerData(fullAddressKeys, params.Customer),
		},
	}

	return c.call(ctx, "create_new_package_cards", map[string]any{"sf_create_new_package_cards": data}, "", true)
}

// TrackingCodesCreateParams are the optional values for
// CreateTrackingCodes. CodeAmount defaults to 1.
type TrackingCodesCreateParams struct {
	CodeAmount  int
	CarrierCode string
}

// CreateTrackingCodes creates tracking codes ahead of time, to be
// assigned to parcels with CreatePackageCards. The service creates
// tracking codes automatically, so this is rarely needed.
func (c *Client) CreateTrackingCodes(ctx context.Context, params *TrackingCodesCreateParams) (any, error) {
	codeAmount := 1
	carrierCode := ""
	if params != nil {
		if params.CodeAmount != 0 {
			codeAmount = params.CodeAmount
		}
		carrierCode = params.CarrierCode
	}

	order := map[string]any{
		"code_amount": codeAmount,
	}
	if carrierCode != "" {
		order["carriercode"] = carrierCode
	}

	data := map[string]any{
		"query": map[string]any{
			"order": order,
		},
	}

	return c.call(ctx, "create_new_tracking_codes", map[string]any{"sf_create_new_tracking_codes": data}, "", true)
}

// PackageCardsParams are the values for GetPackageCards. Direction is
// mandatory; a non-zero SendMail asks the service to notify the
// customer and TrackingCode restricts the result to one parcel.
type PackageCardsParams struct {
	Direction    string
	SendMail     int
	TrackingCode string
}

// GetPackageCards returns already created package cards. Without a
// tracking code every card of the order is returned.
func (c *Client) GetPackageCards(ctx context.Context, params *PackageCardsParams) (any, error) {
	if params == nil {
		return nil, fmt.Errorf("card direction: %w", ErrEmptyValue)
	}
	if err := checkCardDirection(params.Direction); err != nil {
		return nil, err
	}

	order := map[string]any{
		"package_card": map[string]any{
			"card_direction": params.Direction,
		},
	}
	if params.SendMail != 0 {
		order["sendmail"] = params.SendMail
	}
	if params.TrackingCode != "" {
		order["tracking_code"] = params.TrackingCode
	}

	data := map[string]any{
		"query": map[string]any{
			"order": order,
		},
	}

	return c.call(ctx, "get_package_cards", map[string]any{"sf_get_package_cards": data}, "", true)
}

// GetTrackingCodes returns every tracking code already created for the
// order in the given card direction.
func (c *Client) GetTrackingCodes(ctx context.Context, direction string) (any, error) {
	if err := checkCardDirection(direction); err != nil {
		return nil, err
	}

	data := map[string]any{
		"query": map[string]any{
			"order": map[string]any{
				"package_card": map[string]any{
					"card_direction": direction,
				},
			},
		},
	}

	return c.call(ctx, "get_tracking_codes", map[string]any{"sf_get_tracking_codes": data}, "", true)
}

// TrackingEventsParams are the values for GetTrackingEvents. The
// carrier element is sent only when TransportCompany or CarrierCode is
// present.
type TrackingEventsParams struct {
	TrackingCode     string
	TransportCompany string
	CarrierCode      string
}

// GetTrackingEvents returns the tracking events for one tracking code.
func (c *Client) GetTrackingEvents(ctx context.Context, params *TrackingEventsParams) (any, error) {
	if params == nil || params.TrackingCode == "" {
		return nil, fmt.Errorf("tracking code: %w", ErrEmptyValue)
	}

	query := map[string]any{
		"order": map[string]any{
			"tracking_code": params.TrackingCode,
			"language":      c.language,
		},
	}

	carrier := map[string]any{}
	if params.TransportCompany != "" {
		carrier["transport_company"] = params.TransportCompany
	}
	if params.CarrierCode != "" {
		carrier["carriercode"] = params.CarrierCode
	}
	if len(carrier) > 0 {
		query["carrier"] = carrier
	}

	data := map[string]any{"query": query}

	return c.call(ctx, "get_tracking_events", map[string]any{"sf_get_tracking_events": data}, "", true)
}

// GetParcels returns every parcel created for the order.
func (c *Client) GetParcels(ctx context.Context) (any, error) {
	return c.call(ctx, "get_parcels", map[string]any{}, "", true)
}

// EditParcelsParams are the values for EditParcels. Each parcel
// document carries the service-generated id plus the fields to change;
// string fields are emptied with "NULL" and numeric fields with -1.
type EditParcelsParams struct {
	Parcels       []map[string]any
	ReturnParcels int
}

// EditParcels edits the details of existing parcels.
func (c *Client) EditParcels(ctx context.Context, params *EditParcelsParams) (any, error) {
	if params == nil || params.Parcels == nil {
		return nil, fmt.Errorf("parcels: %w", ErrEmptyValue)
	}

	order := map[string]any{
		"parcels": params.Parcels,
	}
	if params.ReturnParcels != 0 {
		order["return_parcels"] = params.ReturnParcels
	}

	data := map[string]any{
		"query": map[string]any{
			"order": order,
		},
	}

	return c.call(ctx, "edit_parcels", map[string]any{"sf_edit_parcels": data}, "", true)
}

// DeleteParcelsParams are the optional values for DeleteParcels.
// Parcels selects parcels by id, parcel_code or tracking_code; a
// non-zero RemoveAllParcels deletes everything.
type DeleteParcelsParams struct {
	Parcels          []map[string]any
	ReturnParcels    int
	RemoveAllParcels int
}

// DeleteParcels removes parcels from the order, together with their
// package cards and tracking codes.
func (c *Client) DeleteParcels(ctx context.Context, params *DeleteParcelsParams) (any, error) {
	order := map[string]any{}
	if params != nil {
		if params.Parcels != nil {
			order["parcels"] = params.Parcels
		}
		if params.ReturnParcels != 0 {
			order["return_parcels"] = params.ReturnParcels
		}
		if params.RemoveAllParcels != 0 {
			order["remove_all_parcels"] = params.RemoveAllParcels
		}
	}

	data := map[string]any{
		"query": map[string]any{
			"order": order,
		},
	}

	return c.call(ctx, "delete_parcels", map[string]any{"sf_delete_parcels": data}, "", true)
}

// TestOrderID probes whether the order id is already in use by another
// order under the same account.
func (c *Client) TestOrderID(ctx context.Context) (any, error) {
	return c.call(ctx, "test_order_id", map[string]any{}, "/true/rest/json/", true)
}
