package shipfunk

import (
	"fmt"
)

// dimensionKeys are the only keys accepted in a dimension document.
// The unit key is descriptive and exempt from numeric validation.
var dimensionKeys = map[string]bool{
	"unit":   true,
	"width":  true,
	"depth":  true,
	"height": true,
}

// Product is a single order line with its shipping attributes. The
// zero value is not usable; construct with NewProduct or through
// Client.AddProduct.
type Product struct {
	code               string
	name               string
	weight             float64
	amount             float64
	weightUnit         string
	warehouse          string
	dimensions         map[string]any
	additionalServices []map[string]any
}

// NewProduct creates a product line. Weight must be greater than zero.
// Amount defaults to 1, weight unit to "kg" and the display name to the
// product code; use the setters to change them.
func NewProduct(code string, weight float64) (*Product, error) {
	if code == "" {
		return nil, fmt.Errorf("product code: %w", ErrEmptyValue)
	}
	if err := checkPositive(weight); err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	return &Product{
		code:       code,
		name:       code,
		weight:     weight,
		amount:     1,
		weightUnit: "kg",
	}, nil
}

// Code returns the product code.
func (p *Product) Code() string { return p.code }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// Weight returns the weight of the product.
func (p *Product) Weight() float64 { return p.weight }

// Amount returns the amount of the product.
func (p *Product) Amount() float64 { return p.amount }

// WeightUnit returns the weight unit.
func (p *Product) WeightUnit() string { return p.weightUnit }

// Warehouse returns the warehouse the product resides in.
func (p *Product) Warehouse() string { return p.warehouse }

// Dimensions returns the dimension document, nil when unset.
func (p *Product) Dimensions() map[string]any { return p.dimensions }

// AdditionalServices returns the additional service descriptors.
func (p *Product) AdditionalServices() []map[string]any { return p.additionalServices }

// SetCode replaces the product code.
func (p *Product) SetCode(code string) error {
	if code == "" {
		return fmt.Errorf("product code: %w", ErrEmptyValue)
	}
	p.code = code
	return nil
}

// SetName replaces the display name.
func (p *Product) SetName(name string) { p.name = name }

// SetWeightUnit replaces the weight unit.
func (p *Product) SetWeightUnit(unit string) { p.weightUnit = unit }

// SetWarehouse replaces the warehouse.
func (p *Product) SetWarehouse(warehouse string) { p.warehouse = warehouse }

// SetWeight replaces the weight. The value must be greater than zero.
func (p *Product) SetWeight(weight float64) error {
	if err := checkPositive(weight); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	p.weight = weight
	return nil
}

// SetAmount replaces the amount. The value must be greater than zero.
func (p *Product) SetAmount(amount float64) error {
	if err := checkPositive(amount); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	p.amount = amount
	return nil
}

// SetDimensions replaces the whole dimension document. Accepted keys
// are unit, width, depth and height; every value except unit must be a
// number greater than zero.
func (p *Product) SetDimensions(dimensions map[string]any) error {
	if err := checkDimensions(dimensions); err != nil {
		return err
	}
	copied := make(map[string]any, len(dimensions))
	for k, v := range dimensions {
		copied[k] = v
	}
	p.dimensions = copied
	return nil
}

// SetAdditionalServices replaces the whole additional service list by
// re-adding every entry.
func (p *Product) SetAdditionalServices(services []map[string]any) {
	p.additionalServices = nil
	for _, service := range services {
		p.AddAdditionalService(service)
	}
}

// AddAdditionalService appends one service descriptor. The content is
// passed to the service as given; the remote schema is richer than
// what this client validates.
func (p *Product) AddAdditionalService(service map[string]any) {
	p.additionalServices = append(p.additionalServices, service)
}

// Data returns the product as a request document. Dimensions,
// warehouse and additional_services appear only when set.
func (p *Product) Data() map[string]any {
	data := map[string]any{
		"amount": p.amount,
		"code":   p.code,
		"name":   p.name,
		"weight": map[string]any{
			"amount": p.weight,
			"unit":   p.weightUnit,
		},
	}

	if len(p.dimensions) > 0 {
		data["dimensions"] = p.dimensions
	}
	if p.warehouse != "" {
		data["warehouse"] = p.warehouse
	}
	if len(p.additionalServices) > 0 {
		data["additional_services"] = p.additionalServices
	}

	return data
}

// checkDimensions validates a dimension document.
func checkDimensions(dimensions map[string]any) error {
	for key, value := range dimensions {
		if !dimensionKeys[key] {
			return fmt.Errorf("%q: %w", key, ErrInvalidKey)
		}
		if key == "unit" {
			continue
		}
		number, err := numericValue(value)
		if err != nil {
			return fmt.Errorf("dimension %s: %w", key, err)
		}
		if err := checkPositive(number); err != nil {
			return fmt.Errorf("dimension %s: %w", key, err)
		}
	}
	return nil
}
