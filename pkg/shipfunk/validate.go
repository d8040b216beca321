package shipfunk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode"
)

// checkPositive validates that a numeric field is greater than zero.
func checkPositive(value float64) error {
	if value <= 0 {
		return ErrNotPositive
	}
	return nil
}

// checkAlphaCode validates a language or currency code: non-empty,
// exactly length letters, nothing but letters.
func checkAlphaCode(value string, length int) error {
	if value == "" {
		return ErrEmptyValue
	}
	runes := []rune(value)
	if len(runes) != length {
		return fmt.Errorf("%q: %w", value, ErrWrongLength)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%q: %w", value, ErrNotAlpha)
		}
	}
	return nil
}

// numericValue coerces an untyped document value to float64. Values
// arriving from decoded JSON may be float64 or json.Number; values set
// by callers may be any Go numeric type.
func numericValue(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, ErrNotANumber
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, ErrNotANumber
		}
		return f, nil
	default:
		return 0, ErrNotANumber
	}
}
