package shipfunk

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is returned when the Shipfunk service replies without a
// top-level "response" element. The full decoded reply is kept so the
// caller can inspect the error codes the service reported.
type APIError struct {
	Operation  string
	StatusCode int
	Body       map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	body, err := json.Marshal(e.Body)
	if err != nil {
		return fmt.Sprintf("shipfunk %s failed (HTTP %d)", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("shipfunk %s failed (HTTP %d): %s", e.Operation, e.StatusCode, body)
}

// Is implements errors.Is for APIError.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Operation == t.Operation
}

// Sentinel errors for request validation failures. All of them are
// detected before any network call is made.
var (
	// ErrEmptyValue indicates a mandatory field was empty.
	ErrEmptyValue = errors.New("mandatory value can not be empty")

	// ErrNotPositive indicates a numeric field was zero or negative.
	ErrNotPositive = errors.New("value has to be bigger than 0")

	// ErrNotANumber indicates a field that must be numeric was not.
	ErrNotANumber = errors.New("value has to be a number")

	// ErrWrongLength indicates a language or currency code of the wrong length.
	ErrWrongLength = errors.New("wrong code length")

	// ErrNotAlpha indicates a language or currency code with non-letter characters.
	ErrNotAlpha = errors.New("only letters are allowed")

	// ErrInvalidKey indicates an unknown dimension key.
	ErrInvalidKey = errors.New("invalid dimension key")

	// ErrNoProducts indicates a price request with no product lines at all.
	ErrNoProducts = errors.New("no product lines found")

	// ErrInvalidDirection indicates a package card direction outside send/return/both.
	ErrInvalidDirection = errors.New("wrong card direction")

	// ErrInvalidStatus indicates an order status outside placed/cancelled.
	ErrInvalidStatus = errors.New("wrong order status")

	// ErrMissingCarrierCode indicates a pickup request without a carrier code.
	ErrMissingCarrierCode = errors.New("carrier code is required")

	// ErrMissingAddressField indicates an address field that could not be
	// resolved from either the call parameters or the stored address.
	ErrMissingAddressField = errors.New("address field not found")
)

// IsValidation reports whether err was raised by request validation,
// as opposed to a transport failure or a service-reported error.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrEmptyValue, ErrNotPositive, ErrNotANumber, ErrWrongLength,
		ErrNotAlpha, ErrInvalidKey, ErrNoProducts, ErrInvalidDirection,
		ErrInvalidStatus, ErrMissingCarrierCode, ErrMissingAddressField,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
